package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// PostRepository persists community posts, likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.CommunityPost) error
	FindByID(ctx context.Context, id uint) (models.CommunityPost, error)
	// ListByCommunity returns posts with pinned entries first, newest after.
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityPost, error)
	SetPinned(ctx context.Context, id uint, pinned bool) error
	// AddLike records the like once per user and returns whether it was new.
	AddLike(ctx context.Context, postID, userID uint) (bool, error)
	AddComment(ctx context.Context, comment *models.PostComment) error
	ListComments(ctx context.Context, postID uint) ([]models.PostComment, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository constructs a post repository backed by GORM.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.CommunityPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (models.CommunityPost, error) {
	var post models.CommunityPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return models.CommunityPost{}, err
	}
	return post, nil
}

func (r *postRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]models.CommunityPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var posts []models.CommunityPost
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("pinned DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) SetPinned(ctx context.Context, id uint, pinned bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("id = ?", id).
		Update("pinned", pinned).Error
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uint) (bool, error) {
	var existing models.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return true, r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.CommunityPost{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]models.PostComment, error) {
	var comments []models.PostComment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.CommunityPost{}).Count(&total).Error
	return total, err
}
