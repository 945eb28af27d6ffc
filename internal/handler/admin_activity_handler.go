package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/models"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// AdminActivityHandler serves the audit log views and the purge flow.
type AdminActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs an admin activity handler.
func NewAdminActivityHandler(service service.ActivityService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register wires the audit log routes.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("/audit-logs", h.listAuditLogs)
	router.Get("/login-logs", h.listLoginLogs)
	router.Post("/logs/purge-token", h.issuePurgeToken)
	router.Delete("/logs", h.purge)
}

func (h *AdminActivityHandler) listAuditLogs(c *fiber.Ctx) error {
	req, err := h.parseListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("audit log listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit logs")
	}

	return utils.SendSuccess(c, "audit logs listed", response)
}

func (h *AdminActivityHandler) listLoginLogs(c *fiber.Ctx) error {
	req, err := h.parseListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Action = ""
	req.Actions = []string{models.ActionLogin, models.ActionLogout}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("login log listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list login logs")
	}

	return utils.SendSuccess(c, "login logs listed", response)
}

func (h *AdminActivityHandler) issuePurgeToken(c *fiber.Ctx) error {
	response, err := h.service.IssuePurgeToken(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrPurgeUnavailable) {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "purge confirmation unavailable")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("purge token issue failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue purge token")
	}

	return utils.SendSuccess(c, "purge token issued", response)
}

func (h *AdminActivityHandler) purge(c *fiber.Ctx) error {
	var payload dto.PurgeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Purge(c.Context(), payload.ConfirmationToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurgeTokenInvalid):
			return utils.SendError(c, fiber.StatusBadRequest, "purge confirmation token invalid or expired")
		case errors.Is(err, service.ErrPurgeUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, "purge confirmation unavailable")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("audit purge failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to purge audit logs")
		}
	}

	return utils.SendSuccess(c, "audit logs purged", response)
}

func (h *AdminActivityHandler) parseListRequest(c *fiber.Ctx) (dto.ActivityListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return dto.ActivityListRequest{}, errors.New("invalid page_size")
	}
	userID, err := parseQueryInt(c, "user_id")
	if err != nil || userID < 0 {
		return dto.ActivityListRequest{}, errors.New("invalid user_id")
	}

	return dto.ActivityListRequest{
		Page:     page,
		PageSize: pageSize,
		Action:   strings.TrimSpace(c.Query("action")),
		UserID:   uint(userID),
	}, nil
}
