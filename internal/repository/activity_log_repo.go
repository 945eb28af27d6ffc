package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// ActivityFilter narrows audit log queries.
type ActivityFilter struct {
	Page     int
	PageSize int
	UserID   *uint
	Action   string
	Actions  []string
}

// ActivityRepository persists the append-only audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.UserActivity) error
	List(ctx context.Context, filter ActivityFilter) ([]models.UserActivity, int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the audit log repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *models.UserActivity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.UserActivity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserActivity{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if len(filter.Actions) > 0 {
		query = query.Where("action IN ?", filter.Actions)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entries []models.UserActivity
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *activityRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.UserActivity{})
	return result.RowsAffected, result.Error
}
