package models

import "time"

// Community member roles.
const (
	MemberRoleCreator   = "creator"
	MemberRoleModerator = "moderator"
	MemberRoleMember    = "member"
)

// Community is a named group users can join and post into.
type Community struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"index;not null" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommunityMember ties a user to a community with a membership role.
type CommunityMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommunityID uint      `gorm:"not null;uniqueIndex:idx_member_pair" json:"community_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_member_pair" json:"user_id"`
	Role        string    `gorm:"size:32;not null;default:member" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityPost is a post published inside a community. Content is stored
// already sanitized.
type CommunityPost struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommunityID uint      `gorm:"index;not null" json:"community_id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Pinned      bool      `gorm:"not null;default:false" json:"pinned"`
	LikeCount   int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostLike records a single user liking a post once.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostComment is a comment under a community post.
type PostComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
