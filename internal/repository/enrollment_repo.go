package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// EnrollmentRepository persists the enrollment allow-list.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	List(ctx context.Context) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id uint) (models.Enrollment, error)
	FindByKey(ctx context.Context, enrollmentID, role string) (models.Enrollment, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository backed by GORM.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) FindByKey(ctx context.Context, enrollmentID, role string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND role = ?", enrollmentID, role).
		First(&enrollment).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, id)
	return result.RowsAffected, result.Error
}
