package dto

import (
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// CommunityCreateRequest captures the payload for creating a community.
type CommunityCreateRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

// CommunityResponse serializes a community.
type CommunityResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uint      `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityListResponse wraps the community listing.
type CommunityListResponse struct {
	Items []CommunityResponse `json:"items"`
}

// PostCreateRequest captures a new community post.
type PostCreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=20000"`
}

// PostResponse serializes a community post.
type PostResponse struct {
	ID          uint      `json:"id"`
	CommunityID uint      `json:"community_id"`
	AuthorID    uint      `json:"author_id"`
	Content     string    `json:"content"`
	Pinned      bool      `json:"pinned"`
	LikeCount   int       `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostListResponse wraps a community's post listing.
type PostListResponse struct {
	Items []PostResponse `json:"items"`
}

// CommentCreateRequest captures a new comment under a post.
type CommentCreateRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// CommentResponse serializes a post comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListResponse wraps a post's comment listing.
type CommentListResponse struct {
	Items []CommentResponse `json:"items"`
}

// NewCommunityResponse maps a community model onto its response shape.
func NewCommunityResponse(community models.Community) CommunityResponse {
	return CommunityResponse{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		CreatorID:   community.CreatorID,
		CreatedAt:   community.CreatedAt,
	}
}

// NewPostResponse maps a post model onto its response shape.
func NewPostResponse(post models.CommunityPost) PostResponse {
	return PostResponse{
		ID:          post.ID,
		CommunityID: post.CommunityID,
		AuthorID:    post.AuthorID,
		Content:     post.Content,
		Pinned:      post.Pinned,
		LikeCount:   post.LikeCount,
		CreatedAt:   post.CreatedAt,
	}
}

// NewCommentResponse maps a comment model onto its response shape.
func NewCommentResponse(comment models.PostComment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
