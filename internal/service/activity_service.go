package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

var (
	// ErrPurgeTokenInvalid indicates the confirmation token is unknown or expired.
	ErrPurgeTokenInvalid = errors.New("purge confirmation token invalid or expired")
	// ErrPurgeUnavailable indicates purge confirmation cannot be issued right now.
	ErrPurgeUnavailable = errors.New("purge confirmation unavailable")
)

const purgeTokenTTL = 10 * time.Minute

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID    uint
	Email string
	Role  string
}

// ActivityEntry captures the details required to persist an audit entry.
// Email and role are snapshots of the account at the time of the event.
type ActivityEntry struct {
	Action    string
	UserID    uint
	UserEmail string
	UserRole  string
	IPAddress string
	UserAgent string
	Metadata  map[string]interface{}
}

// ActivityRecorder defines behaviour for recording audit events.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

// ActivityService exposes methods to record, query and purge the audit trail.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	IssuePurgeToken(ctx context.Context) (dto.PurgeTokenResponse, error)
	Purge(ctx context.Context, confirmationToken string) (dto.PurgeResponse, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	cache  *redis.Client
	logger zerolog.Logger
}

// NewActivityService constructs the audit log service.
func NewActivityService(repo repository.ActivityRepository, cache *redis.Client, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) error {
	action := strings.ToUpper(strings.TrimSpace(entry.Action))
	switch action {
	case models.ActionLogin, models.ActionLogout, models.ActionCreate, models.ActionUpdate, models.ActionDelete:
	default:
		return fmt.Errorf("unknown activity action %q", entry.Action)
	}

	metadata := datatypes.JSONMap{}
	for key, value := range entry.Metadata {
		metadata[key] = value
	}

	model := models.UserActivity{
		Action:    action,
		UserID:    entry.UserID,
		UserEmail: entry.UserEmail,
		UserRole:  entry.UserRole,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		Metadata:  metadata,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to persist audit entry")
		return err
	}

	return nil
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	filter := repository.ActivityFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Action:   strings.ToUpper(strings.TrimSpace(req.Action)),
		Actions:  req.Actions,
	}
	if req.UserID > 0 {
		filter.UserID = &req.UserID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
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

	return dto.ActivityListResponse{Items: items, Pagination: pagination}, nil
}

func (s *activityService) IssuePurgeToken(ctx context.Context) (dto.PurgeTokenResponse, error) {
	if s.cache == nil {
		return dto.PurgeTokenResponse{}, ErrPurgeUnavailable
	}

	token := uuid.NewString()
	key := purgeTokenKey(token)
	if err := s.cache.Set(ctx, key, 1, purgeTokenTTL).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to store purge token")
		return dto.PurgeTokenResponse{}, err
	}

	return dto.PurgeTokenResponse{
		Token:     token,
		ExpiresIn: int64(purgeTokenTTL.Seconds()),
	}, nil
}

func (s *activityService) Purge(ctx context.Context, confirmationToken string) (dto.PurgeResponse, error) {
	if s.cache == nil {
		return dto.PurgeResponse{}, ErrPurgeUnavailable
	}

	token := strings.TrimSpace(confirmationToken)
	if token == "" {
		return dto.PurgeResponse{}, ErrPurgeTokenInvalid
	}

	// GetDel makes the token single use even under concurrent purge calls.
	if err := s.cache.GetDel(ctx, purgeTokenKey(token)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return dto.PurgeResponse{}, ErrPurgeTokenInvalid
		}
		return dto.PurgeResponse{}, err
	}

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge audit trail")
		return dto.PurgeResponse{}, err
	}

	s.logger.Warn().Int64("deleted", deleted).Msg("audit trail purged")

	return dto.PurgeResponse{Deleted: deleted}, nil
}

func purgeTokenKey(token string) string {
	return fmt.Sprintf("audit:purge:%s", token)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
