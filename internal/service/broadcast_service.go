package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/observability"
	"github.com/noah-isme/alumnet-go-api/internal/repository"
)

// BroadcastService dispatches bulk email to a selected set of users.
type BroadcastService interface {
	Send(ctx context.Context, req dto.BroadcastRequest) (dto.BroadcastResponse, error)
}

type broadcastService struct {
	users     repository.UserRepository
	delivery  MailDelivery
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewBroadcastService constructs the admin broadcast service.
func NewBroadcastService(users repository.UserRepository, delivery MailDelivery, validate *validator.Validate, logger zerolog.Logger) BroadcastService {
	return &broadcastService{
		users:     users,
		delivery:  delivery,
		validator: validate,
		logger:    logger.With().Str("component", "broadcast_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/alumnet-go-api/internal/service/broadcast"),
	}
}

// Send delivers the message to every selected user and reports partial
// failure as counts; a bad recipient never aborts the rest of the batch.
func (s *broadcastService) Send(ctx context.Context, req dto.BroadcastRequest) (dto.BroadcastResponse, error) {
	ctx, span := s.tracer.Start(ctx, "broadcast.send")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.BroadcastResponse{}, err
	}

	span.SetAttributes(attribute.Int("broadcast.recipients", len(req.UserIDs)))

	users, err := s.users.FindByIDs(ctx, req.UserIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recipient lookup failed")
		return dto.BroadcastResponse{}, err
	}

	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	var response dto.BroadcastResponse
	for _, id := range req.UserIDs {
		user, ok := byID[id]
		if !ok {
			response.EmailsFailed++
			observability.BroadcastEmails().WithLabelValues("failed").Inc()
			s.logger.Warn().Uint("user_id", id).Msg("broadcast recipient not found")
			continue
		}

		if err := s.delivery.Send(ctx, user.Email, req.Subject, req.Message); err != nil {
			response.EmailsFailed++
			observability.BroadcastEmails().WithLabelValues("failed").Inc()
			s.logger.Warn().Err(err).Str("email", maskEmail(user.Email)).Msg("broadcast delivery failed")
			continue
		}

		response.EmailsSent++
		observability.BroadcastEmails().WithLabelValues("sent").Inc()
	}

	span.SetAttributes(
		attribute.Int("broadcast.sent", response.EmailsSent),
		attribute.Int("broadcast.failed", response.EmailsFailed),
	)
	span.SetStatus(codes.Ok, "dispatched")

	s.logger.Info().
		Int("sent", response.EmailsSent).
		Int("failed", response.EmailsFailed).
		Msg("broadcast dispatched")

	return response, nil
}
