package dto

import (
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// EnrollmentCreateRequest captures the admin "add enrollment" payload.
type EnrollmentCreateRequest struct {
	EnrollmentID string `json:"enrollment_id" validate:"required,max=64"`
	Role         string `json:"role" validate:"required,oneof=student alumni faculty"`
}

// EnrollmentResponse serializes an enrollment record.
type EnrollmentResponse struct {
	ID           uint      `json:"id"`
	EnrollmentID string    `json:"enrollment_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// EnrollmentListResponse wraps the full enrollment listing.
type EnrollmentListResponse struct {
	Items []EnrollmentResponse `json:"items"`
}

// NewEnrollmentResponse maps an enrollment model onto its response shape.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:           enrollment.ID,
		EnrollmentID: enrollment.EnrollmentID,
		Role:         enrollment.Role,
		CreatedAt:    enrollment.CreatedAt,
	}
}
