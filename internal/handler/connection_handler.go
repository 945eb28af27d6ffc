package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// ConnectionHandler handles connection requests and the contact list.
type ConnectionHandler struct {
	service service.ConnectionService
	logger  zerolog.Logger
}

// NewConnectionHandler constructs a connection handler.
func NewConnectionHandler(service service.ConnectionService, logger zerolog.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		service: service,
		logger:  logger.With().Str("component", "connection_handler").Logger(),
	}
}

// Register wires the connection routes.
func (h *ConnectionHandler) Register(router fiber.Router) {
	router.Post("/connect/:userId", h.request)
	router.Get("/connections", h.list)
	router.Get("/requests", h.listRequests)
	router.Post("/requests/:id/accept", h.accept)
	router.Delete("/connections/:id", h.remove)
}

func (h *ConnectionHandler) request(c *fiber.Ctx) error {
	targetID, err := parseParamID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.Request(c.Context(), userIDFromContext(c), targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfConnection):
			return utils.SendError(c, fiber.StatusBadRequest, "cannot connect with yourself")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		case errors.Is(err, service.ErrConnectionExists):
			return utils.SendError(c, fiber.StatusConflict, "connection already exists")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("connection request failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to send connection request")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "connection request sent", response)
}

func (h *ConnectionHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("connection listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list connections")
	}

	return utils.SendSuccess(c, "connections listed", response)
}

func (h *ConnectionHandler) listRequests(c *fiber.Ctx) error {
	response, err := h.service.ListRequests(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("request listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list requests")
	}

	return utils.SendSuccess(c, "pending requests listed", response)
}

func (h *ConnectionHandler) accept(c *fiber.Ctx) error {
	connectionID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.Accept(c.Context(), userIDFromContext(c), connectionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConnectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "connection not found")
		case errors.Is(err, service.ErrNotRequestTarget):
			return utils.SendError(c, fiber.StatusForbidden, "only the request target may accept")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("accept failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to accept request")
		}
	}

	return utils.SendSuccess(c, "connection accepted", response)
}

func (h *ConnectionHandler) remove(c *fiber.Ctx) error {
	connectionID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Remove(c.Context(), userIDFromContext(c), connectionID); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("remove failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove connection")
	}

	return utils.SendSuccess(c, "connection removed", nil)
}
