package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrCommunityExists indicates a community with that name already exists.
	ErrCommunityExists = errors.New("community name already taken")
	// ErrCommunityNotFound indicates the community does not exist.
	ErrCommunityNotFound = errors.New("community not found")
	// ErrAlreadyMember indicates the user already joined the community.
	ErrAlreadyMember = errors.New("already a member")
	// ErrNotMember indicates the user is not part of the community.
	ErrNotMember = errors.New("not a member of this community")
	// ErrPostNotFound indicates the post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotModerator indicates the action requires moderator rights.
	ErrNotModerator = errors.New("moderator rights required")
	// ErrEmptyContent indicates nothing was left after sanitization.
	ErrEmptyContent = errors.New("content is empty")
)

// CommunityService manages communities, memberships, posts and comments.
type CommunityService interface {
	Create(ctx context.Context, actorID uint, req dto.CommunityCreateRequest) (dto.CommunityResponse, error)
	List(ctx context.Context) (dto.CommunityListResponse, error)
	Get(ctx context.Context, id uint) (dto.CommunityResponse, error)
	Join(ctx context.Context, actorID, communityID uint) error
	CreatePost(ctx context.Context, actorID, communityID uint, req dto.PostCreateRequest) (dto.PostResponse, error)
	ListPosts(ctx context.Context, communityID uint, limit, offset int) (dto.PostListResponse, error)
	LikePost(ctx context.Context, actorID, postID uint) (dto.PostResponse, error)
	SetPinned(ctx context.Context, actorID, postID uint, pinned bool) (dto.PostResponse, error)
	AddComment(ctx context.Context, actorID, postID uint, req dto.CommentCreateRequest) (dto.CommentResponse, error)
	ListComments(ctx context.Context, postID uint) (dto.CommentListResponse, error)
}

type communityService struct {
	communities repository.CommunityRepository
	posts       repository.PostRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewCommunityService constructs the community service. Post content passes
// through a UGC sanitization policy before it is stored.
func NewCommunityService(communities repository.CommunityRepository, posts repository.PostRepository, validate *validator.Validate, logger zerolog.Logger) CommunityService {
	return &communityService{
		communities: communities,
		posts:       posts,
		validator:   validate,
		sanitizer:   bluemonday.UGCPolicy(),
		logger:      logger.With().Str("component", "community_service").Logger(),
	}
}

func (s *communityService) Create(ctx context.Context, actorID uint, req dto.CommunityCreateRequest) (dto.CommunityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommunityResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.communities.FindByName(ctx, name); err == nil {
		return dto.CommunityResponse{}, ErrCommunityExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CommunityResponse{}, err
	}

	community := models.Community{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatorID:   actorID,
	}
	if err := s.communities.Create(ctx, &community); err != nil {
		return dto.CommunityResponse{}, err
	}

	member := models.CommunityMember{
		CommunityID: community.ID,
		UserID:      actorID,
		Role:        models.MemberRoleCreator,
	}
	if err := s.communities.AddMember(ctx, &member); err != nil {
		return dto.CommunityResponse{}, err
	}

	return dto.NewCommunityResponse(community), nil
}

func (s *communityService) List(ctx context.Context) (dto.CommunityListResponse, error) {
	communities, err := s.communities.List(ctx)
	if err != nil {
		return dto.CommunityListResponse{}, err
	}

	items := make([]dto.CommunityResponse, 0, len(communities))
	for _, community := range communities {
		items = append(items, dto.NewCommunityResponse(community))
	}
	return dto.CommunityListResponse{Items: items}, nil
}

func (s *communityService) Get(ctx context.Context, id uint) (dto.CommunityResponse, error) {
	community, err := s.communities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommunityResponse{}, ErrCommunityNotFound
		}
		return dto.CommunityResponse{}, err
	}
	return dto.NewCommunityResponse(community), nil
}

func (s *communityService) Join(ctx context.Context, actorID, communityID uint) error {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommunityNotFound
		}
		return err
	}

	if _, err := s.communities.FindMember(ctx, communityID, actorID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := models.CommunityMember{
		CommunityID: communityID,
		UserID:      actorID,
		Role:        models.MemberRoleMember,
	}
	return s.communities.AddMember(ctx, &member)
}

func (s *communityService) CreatePost(ctx context.Context, actorID, communityID uint, req dto.PostCreateRequest) (dto.PostResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PostResponse{}, err
	}

	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrCommunityNotFound
		}
		return dto.PostResponse{}, err
	}

	if _, err := s.communities.FindMember(ctx, communityID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrNotMember
		}
		return dto.PostResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return dto.PostResponse{}, ErrEmptyContent
	}

	post := models.CommunityPost{
		CommunityID: communityID,
		AuthorID:    actorID,
		Content:     content,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return dto.PostResponse{}, err
	}

	return dto.NewPostResponse(post), nil
}

func (s *communityService) ListPosts(ctx context.Context, communityID uint, limit, offset int) (dto.PostListResponse, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostListResponse{}, ErrCommunityNotFound
		}
		return dto.PostListResponse{}, err
	}

	posts, err := s.posts.ListByCommunity(ctx, communityID, limit, offset)
	if err != nil {
		return dto.PostListResponse{}, err
	}

	items := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, dto.NewPostResponse(post))
	}
	return dto.PostListResponse{Items: items}, nil
}

func (s *communityService) LikePost(ctx context.Context, actorID, postID uint) (dto.PostResponse, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}

	added, err := s.posts.AddLike(ctx, postID, actorID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	if added {
		post.LikeCount++
	}

	return dto.NewPostResponse(post), nil
}

func (s *communityService) SetPinned(ctx context.Context, actorID, postID uint, pinned bool) (dto.PostResponse, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrPostNotFound
		}
		return dto.PostResponse{}, err
	}

	member, err := s.communities.FindMember(ctx, post.CommunityID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PostResponse{}, ErrNotModerator
		}
		return dto.PostResponse{}, err
	}
	if member.Role != models.MemberRoleCreator && member.Role != models.MemberRoleModerator {
		return dto.PostResponse{}, ErrNotModerator
	}

	if err := s.posts.SetPinned(ctx, postID, pinned); err != nil {
		return dto.PostResponse{}, err
	}

	post.Pinned = pinned
	return dto.NewPostResponse(post), nil
}

func (s *communityService) AddComment(ctx context.Context, actorID, postID uint, req dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommentResponse{}, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrPostNotFound
		}
		return dto.CommentResponse{}, err
	}

	if _, err := s.communities.FindMember(ctx, post.CommunityID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrNotMember
		}
		return dto.CommentResponse{}, err
	}

	// Comments are plain text.
	content := strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(req.Content))
	if content == "" {
		return dto.CommentResponse{}, ErrEmptyContent
	}

	comment := models.PostComment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	}
	if err := s.posts.AddComment(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(comment), nil
}

func (s *communityService) ListComments(ctx context.Context, postID uint) (dto.CommentListResponse, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentListResponse{}, ErrPostNotFound
		}
		return dto.CommentListResponse{}, err
	}

	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return dto.CommentListResponse{}, err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, dto.NewCommentResponse(comment))
	}
	return dto.CommentListResponse{Items: items}, nil
}
