package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// EnrollmentHandler manages the signup allow-list.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register wires the enrollment routes.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *EnrollmentHandler) create(c *fiber.Ctx) error {
	var payload dto.EnrollmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrEnrollmentExists):
			return utils.SendError(c, fiber.StatusConflict, "enrollment already exists")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("enrollment creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create enrollment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrollment created", response)
}

func (h *EnrollmentHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("enrollment listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list enrollments")
	}

	return utils.SendSuccess(c, "enrollments listed", response)
}

func (h *EnrollmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrEnrollmentMissing) {
			return utils.SendError(c, fiber.StatusNotFound, "enrollment not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("enrollment deletion failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete enrollment")
	}

	return utils.SendSuccess(c, "enrollment deleted", nil)
}
