package dto

import "github.com/noah-isme/alumnet-go-api/internal/models"

// SignupRequest captures the payload for account creation. Student, alumni and
// faculty signups must reference an existing enrollment record.
type SignupRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	Role         string `json:"role" validate:"required,oneof=student alumni faculty"`
	EnrollmentID string `json:"enrollment_id" validate:"required,max=64"`
}

// LoginRequest is the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest confirms a signup with the emailed one-time code.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ResendOTPRequest asks for a fresh verification code.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AuthUserResponse serializes the authenticated user without sensitive fields.
type AuthUserResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// LoginResponse wraps the issued token together with the user summary.
type LoginResponse struct {
	Token     string           `json:"token"`
	TokenType string           `json:"token_type"`
	ExpiresIn int64            `json:"expires_in"`
	User      AuthUserResponse `json:"user"`
}

// NewAuthUserResponse maps a user model onto its auth response shape.
func NewAuthUserResponse(user models.User) AuthUserResponse {
	return AuthUserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}
}
