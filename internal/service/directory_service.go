package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

// DirectoryService serves the public alumni and student listings.
type DirectoryService interface {
	ListByRole(ctx context.Context, role string, req dto.DirectoryListRequest) (dto.DirectoryListResponse, error)
	GetByRole(ctx context.Context, role string, id uint) (dto.UserDetailResponse, error)
}

type directoryService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewDirectoryService constructs the directory service.
func NewDirectoryService(users repository.UserRepository, logger zerolog.Logger) DirectoryService {
	return &directoryService{
		users:  users,
		logger: logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListByRole(ctx context.Context, role string, req dto.DirectoryListRequest) (dto.DirectoryListResponse, error) {
	filter := repository.UserFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Role:     role,
		Search:   req.Search,
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return dto.DirectoryListResponse{}, err
	}

	items := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserSummary(user))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.DirectoryListResponse{Items: items, Pagination: pagination}, nil
}

// GetByRole returns the member only when it carries the expected role, so an
// alumni profile cannot be fetched through the student route and vice versa.
func (s *directoryService) GetByRole(ctx context.Context, role string, id uint) (dto.UserDetailResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserDetailResponse{}, ErrUserNotFound
		}
		return dto.UserDetailResponse{}, err
	}

	if user.Role != role {
		return dto.UserDetailResponse{}, ErrUserNotFound
	}

	return dto.NewUserDetailResponse(user), nil
}
