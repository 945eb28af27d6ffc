package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// CommunityRepository persists communities and their memberships.
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	List(ctx context.Context) ([]models.Community, error)
	FindByID(ctx context.Context, id uint) (models.Community, error)
	FindByName(ctx context.Context, name string) (models.Community, error)
	AddMember(ctx context.Context, member *models.CommunityMember) error
	FindMember(ctx context.Context, communityID, userID uint) (models.CommunityMember, error)
	ListMembers(ctx context.Context, communityID uint) ([]models.CommunityMember, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository constructs a community repository backed by GORM.
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *communityRepository) List(ctx context.Context) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepository) FindByID(ctx context.Context, id uint) (models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).First(&community, id).Error; err != nil {
		return models.Community{}, err
	}
	return community, nil
}

func (r *communityRepository) FindByName(ctx context.Context, name string) (models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&community).Error; err != nil {
		return models.Community{}, err
	}
	return community, nil
}

func (r *communityRepository) AddMember(ctx context.Context, member *models.CommunityMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *communityRepository) FindMember(ctx context.Context, communityID, userID uint) (models.CommunityMember, error) {
	var member models.CommunityMember
	if err := r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&member).Error; err != nil {
		return models.CommunityMember{}, err
	}
	return member, nil
}

func (r *communityRepository) ListMembers(ctx context.Context, communityID uint) ([]models.CommunityMember, error) {
	var members []models.CommunityMember
	if err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
