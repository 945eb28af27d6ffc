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

// CommunityHandler handles community, post and comment endpoints.
type CommunityHandler struct {
	service service.CommunityService
	logger  zerolog.Logger
}

// NewCommunityHandler constructs a community handler.
func NewCommunityHandler(service service.CommunityService, logger zerolog.Logger) *CommunityHandler {
	return &CommunityHandler{
		service: service,
		logger:  logger.With().Str("component", "community_handler").Logger(),
	}
}

// Register wires the community routes.
func (h *CommunityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Post("/:id/join", h.join)
	router.Get("/:id/posts", h.listPosts)
	router.Post("/:id/posts", h.createPost)
}

// RegisterPosts wires the post-scoped routes.
func (h *CommunityHandler) RegisterPosts(router fiber.Router) {
	router.Post("/:id/like", h.likePost)
	router.Post("/:id/pin", h.pinPost)
	router.Delete("/:id/pin", h.unpinPost)
	router.Get("/:id/comments", h.listComments)
	router.Post("/:id/comments", h.addComment)
}

func (h *CommunityHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("community listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list communities")
	}

	return utils.SendSuccess(c, "communities listed", response)
}

func (h *CommunityHandler) create(c *fiber.Ctx) error {
	var payload dto.CommunityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrCommunityExists):
			return utils.SendError(c, fiber.StatusConflict, "community name already taken")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("community creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create community")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "community created", response)
}

func (h *CommunityHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCommunityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "community not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("community lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch community")
	}

	return utils.SendSuccess(c, "community fetched", response)
}

func (h *CommunityHandler) join(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Join(c.Context(), userIDFromContext(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCommunityNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "community not found")
		case errors.Is(err, service.ErrAlreadyMember):
			return utils.SendError(c, fiber.StatusConflict, "already a member")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("join failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to join community")
		}
	}

	return utils.SendSuccess(c, "joined community", nil)
}

func (h *CommunityHandler) listPosts(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	response, err := h.service.ListPosts(c.Context(), id, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrCommunityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "community not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("post listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list posts")
	}

	return utils.SendSuccess(c, "posts listed", response)
}

func (h *CommunityHandler) createPost(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.PostCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreatePost(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrEmptyContent):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrCommunityNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "community not found")
		case errors.Is(err, service.ErrNotMember):
			return utils.SendError(c, fiber.StatusForbidden, "not a member of this community")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("post creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create post")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "post created", response)
}

func (h *CommunityHandler) likePost(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.LikePost(c.Context(), userIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "post not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("like failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to like post")
	}

	return utils.SendSuccess(c, "post liked", response)
}

func (h *CommunityHandler) pinPost(c *fiber.Ctx) error {
	return h.setPinned(c, true)
}

func (h *CommunityHandler) unpinPost(c *fiber.Ctx) error {
	return h.setPinned(c, false)
}

func (h *CommunityHandler) setPinned(c *fiber.Ctx, pinned bool) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.SetPinned(c.Context(), userIDFromContext(c), id, pinned)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrNotModerator):
			return utils.SendError(c, fiber.StatusForbidden, "moderator rights required")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("pin update failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update pin state")
		}
	}

	message := "post pinned"
	if !pinned {
		message = "post unpinned"
	}
	return utils.SendSuccess(c, message, response)
}

func (h *CommunityHandler) listComments(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	response, err := h.service.ListComments(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "post not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("comment listing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list comments")
	}

	return utils.SendSuccess(c, "comments listed", response)
}

func (h *CommunityHandler) addComment(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.CommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.Content = strings.TrimSpace(payload.Content)

	response, err := h.service.AddComment(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrEmptyContent):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrPostNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrNotMember):
			return utils.SendError(c, fiber.StatusForbidden, "not a member of this community")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("comment creation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add comment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment added", response)
}
