package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/alumnet-go-api/internal/dto"
	"github.com/noah-isme/alumnet-go-api/internal/service"
	"github.com/noah-isme/alumnet-go-api/internal/utils"
)

// AuthHandler handles signup, login and account recovery endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/signup", h.signup)
	router.Post("/login", h.login)
	router.Post("/verify-otp", h.verifyOTP)
	router.Post("/resend-otp", h.resendOTP)
	router.Post("/forgot-password", h.forgotPassword)
	router.Post("/reset-password", h.resetPassword)
}

// RegisterProtected wires the auth routes that need an authenticated user.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var payload dto.SignupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Signup(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrEnrollmentNotFound):
			return utils.SendError(c, fiber.StatusForbidden, "enrollment record not found")
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("signup failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create account")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created, verification code sent", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload, requestMetaFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrNotVerified):
			return utils.SendError(c, fiber.StatusUnauthorized, "email not verified")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
		}
	}

	return utils.SendSuccess(c, "logged in", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.service.Logout(c.Context(), userIDFromContext(c), requestMetaFromContext(c))
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) verifyOTP(c *fiber.Ctx) error {
	var payload dto.VerifyOTPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.VerifyOTP(c.Context(), payload); err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrInvalidOTP):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid or expired verification code")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("otp verification failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify account")
		}
	}

	return utils.SendSuccess(c, "account verified", nil)
}

func (h *AuthHandler) resendOTP(c *fiber.Ctx) error {
	var payload dto.ResendOTPRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResendOTP(c.Context(), payload); err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrAlreadyVerified):
			return utils.SendError(c, fiber.StatusConflict, "email already verified")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("otp resend failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resend verification code")
		}
	}

	return utils.SendSuccess(c, "verification code sent", nil)
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx) error {
	var payload dto.ForgotPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ForgotPassword(c.Context(), payload); err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("forgot password failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to start password reset")
	}

	// The response is the same whether or not the address exists.
	return utils.SendSuccess(c, "reset instructions sent if the address is registered", nil)
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var payload dto.ResetPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.Context(), payload); err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrInvalidResetToken):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid or expired reset token")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("password reset failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to reset password")
		}
	}

	return utils.SendSuccess(c, "password updated", nil)
}
