package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// AdminUserHandler serves the admin user listing and dashboard aggregates.
type AdminUserHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs an admin user handler.
func NewAdminUserHandler(service service.AdminService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register wires the admin user routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("/users", h.listUsers)
	router.Get("/dashboard-stats", h.dashboardStats)
}

func (h *AdminUserHandler) listUsers(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	req := dto.AdminUserListRequest{
		Page:     page,
		PageSize: pageSize,
		Role:     strings.ToLower(strings.TrimSpace(c.Query("role"))),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	response, err := h.service.ListUsers(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("admin user listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendSuccess(c, "users listed", response)
}

func (h *AdminUserHandler) dashboardStats(c *fiber.Ctx) error {
	response, err := h.service.DashboardStats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("dashboard stats failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute dashboard stats")
	}

	return utils.SendSuccess(c, "dashboard stats computed", response)
}
