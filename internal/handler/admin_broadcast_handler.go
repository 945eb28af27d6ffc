package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// AdminBroadcastHandler dispatches bulk email to selected users.
type AdminBroadcastHandler struct {
	service service.BroadcastService
	logger  zerolog.Logger
}

// NewAdminBroadcastHandler constructs an admin broadcast handler.
func NewAdminBroadcastHandler(service service.BroadcastService, logger zerolog.Logger) *AdminBroadcastHandler {
	return &AdminBroadcastHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_broadcast_handler").Logger(),
	}
}

// Register wires the broadcast route.
func (h *AdminBroadcastHandler) Register(router fiber.Router) {
	router.Post("/broadcast", h.send)
}

func (h *AdminBroadcastHandler) send(c *fiber.Ctx) error {
	var payload dto.BroadcastRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Send(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("broadcast failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to send broadcast")
	}

	return utils.SendSuccess(c, "broadcast dispatched", response)
}
