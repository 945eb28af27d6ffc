package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

const dashboardStatsKey = "admin:dashboard:stats"

// AdminService serves the admin user listing and dashboard aggregates.
type AdminService interface {
	ListUsers(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error)
	DashboardStats(ctx context.Context) (dto.DashboardStatsResponse, error)
}

type adminService struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
	posts       repository.PostRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAdminService constructs the admin service.
func NewAdminService(
	users repository.UserRepository,
	connections repository.ConnectionRepository,
	posts repository.PostRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		users:       users,
		connections: connections,
		posts:       posts,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "admin_service").Logger(),
		now:         time.Now,
	}
}

func (s *adminService) ListUsers(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error) {
	filter := repository.UserFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Role:     req.Role,
		Search:   req.Search,
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return dto.AdminUserListResponse{}, err
	}

	items := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewAdminUserResponse(user))
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

	return dto.AdminUserListResponse{Items: items, Pagination: pagination}, nil
}

func (s *adminService) DashboardStats(ctx context.Context) (dto.DashboardStatsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardStatsKey).Result(); err == nil {
			var response dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard stats cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard stats cache")
		}
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	var total int64
	for _, count := range byRole {
		total += count
	}

	verified, err := s.users.CountVerified(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	recent, err := s.users.CountCreatedSince(ctx, s.now().AddDate(0, 0, -7))
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	connections, err := s.connections.Count(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	posts, err := s.posts.Count(ctx)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	response := dto.DashboardStatsResponse{
		TotalUsers:       total,
		UsersByRole:      byRole,
		VerifiedUsers:    verified,
		RecentSignups:    recent,
		TotalConnections: connections,
		TotalPosts:       posts,
		GeneratedAt:      s.now().UTC(),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardStatsKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard stats cache")
			}
		}
	}

	return response, nil
}
