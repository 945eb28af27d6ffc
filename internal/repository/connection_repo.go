package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// ConnectionRepository persists the social-graph edges between users.
type ConnectionRepository interface {
	Create(ctx context.Context, connection *models.Connection) error
	FindByID(ctx context.Context, id uint) (models.Connection, error)
	// FindPair looks up an edge between two users in either direction.
	FindPair(ctx context.Context, userA, userB uint) (models.Connection, error)
	ListForUser(ctx context.Context, userID uint, status string) ([]models.Connection, error)
	ListIncomingPending(ctx context.Context, targetID uint) ([]models.Connection, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	// DeleteForUser removes the edge only when the user is part of it and
	// reports how many rows were affected.
	DeleteForUser(ctx context.Context, id, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository constructs a connection repository backed by GORM.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, connection *models.Connection) error {
	return r.db.WithContext(ctx).Create(connection).Error
}

func (r *connectionRepository) FindByID(ctx context.Context, id uint) (models.Connection, error) {
	var connection models.Connection
	if err := r.db.WithContext(ctx).First(&connection, id).Error; err != nil {
		return models.Connection{}, err
	}
	return connection, nil
}

func (r *connectionRepository) FindPair(ctx context.Context, userA, userB uint) (models.Connection, error) {
	var connection models.Connection
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)", userA, userB, userB, userA).
		First(&connection).Error; err != nil {
		return models.Connection{}, err
	}
	return connection, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID uint, status string) ([]models.Connection, error) {
	query := r.db.WithContext(ctx).
		Where("requester_id = ? OR target_id = ?", userID, userID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var connections []models.Connection
	if err := query.Order("updated_at DESC").Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}

func (r *connectionRepository) ListIncomingPending(ctx context.Context, targetID uint) ([]models.Connection, error) {
	var connections []models.Connection
	if err := r.db.WithContext(ctx).
		Where("target_id = ? AND status = ?", targetID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *connectionRepository) DeleteForUser(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND (requester_id = ? OR target_id = ?)", id, userID, userID).
		Delete(&models.Connection{})
	return result.RowsAffected, result.Error
}

func (r *connectionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("status = ?", models.ConnectionStatusAccepted).
		Count(&total).Error
	return total, err
}
