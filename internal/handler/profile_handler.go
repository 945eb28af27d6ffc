package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/middleware"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

const maxProfilePictureBytes = 5 << 20

// ProfileHandler handles profile edits and picture uploads.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register wires the profile routes. Both mutate on behalf of the caller, so
// they refuse to run without an authenticated user even if the surrounding
// group is misconfigured.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Put("/profile/:id", middleware.WithAuth(h.update, middleware.AuthOptions{}))
	router.Post("/profile/:id/image", middleware.WithAuth(h.uploadPicture, middleware.AuthOptions{}))
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "not allowed to modify this profile")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("profile update failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	return utils.SendSuccess(c, "profile updated", response)
}

func (h *ProfileHandler) uploadPicture(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size > maxProfilePictureBytes {
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read uploaded file")
	}

	response, err := h.service.UploadPicture(c.Context(), actorFromContext(c), id, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "not allowed to modify this profile")
		case errors.Is(err, service.ErrUnsupportedImage):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "unsupported image type")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("picture upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload picture")
		}
	}

	return utils.SendSuccess(c, "picture uploaded", response)
}
