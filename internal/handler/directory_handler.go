package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// DirectoryHandler serves the alumni and student member listings.
type DirectoryHandler struct {
	service service.DirectoryService
	role    string
	logger  zerolog.Logger
}

// NewDirectoryHandler constructs a directory handler scoped to one role.
func NewDirectoryHandler(service service.DirectoryService, role string, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		role:    strings.ToLower(role),
		logger:  logger.With().Str("component", "directory_handler").Str("role", role).Logger(),
	}
}

// Register wires the directory routes.
func (h *DirectoryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *DirectoryHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.DirectoryListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	response, err := h.service.ListByRole(c.Context(), h.role, req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("directory listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list members")
	}

	return utils.SendSuccess(c, "members listed", response)
}

func (h *DirectoryHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.GetByRole(c.Context(), h.role, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("member lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch member")
	}

	return utils.SendSuccess(c, "member fetched", response)
}
