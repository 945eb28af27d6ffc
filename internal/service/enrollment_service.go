package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrEnrollmentExists indicates the (enrollment ID, role) pair already exists.
	ErrEnrollmentExists = errors.New("enrollment already exists")
	// ErrEnrollmentMissing indicates the enrollment record does not exist.
	ErrEnrollmentMissing = errors.New("enrollment not found")
)

// EnrollmentService exposes the admin CRUD over the signup allow-list.
type EnrollmentService interface {
	Create(ctx context.Context, actor Actor, req dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	List(ctx context.Context) (dto.EnrollmentListResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type enrollmentService struct {
	repo      repository.EnrollmentRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo repository.EnrollmentRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Create(ctx context.Context, actor Actor, req dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	// Enrollment IDs are case-sensitive keys, so the lookup is exact.
	if _, err := s.repo.FindByKey(ctx, req.EnrollmentID, req.Role); err == nil {
		return dto.EnrollmentResponse{}, ErrEnrollmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.Enrollment{
		EnrollmentID: req.EnrollmentID,
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.audit(ctx, actor, models.ActionCreate, enrollment)

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) List(ctx context.Context) (dto.EnrollmentListResponse, error) {
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		return dto.EnrollmentListResponse{}, err
	}

	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		items = append(items, dto.NewEnrollmentResponse(enrollment))
	}

	return dto.EnrollmentListResponse{Items: items}, nil
}

func (s *enrollmentService) Delete(ctx context.Context, actor Actor, id uint) error {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentMissing
		}
		return err
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEnrollmentMissing
	}

	s.audit(ctx, actor, models.ActionDelete, enrollment)

	return nil
}

func (s *enrollmentService) audit(ctx context.Context, actor Actor, action string, enrollment models.Enrollment) {
	if err := s.recorder.Record(ctx, ActivityEntry{
		Action:    action,
		UserID:    actor.ID,
		UserEmail: actor.Email,
		UserRole:  actor.Role,
		Metadata: map[string]interface{}{
			"entity":        "enrollment",
			"enrollment_id": enrollment.EnrollmentID,
			"role":          enrollment.Role,
		},
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("enrollment audit write failed")
	}
}
