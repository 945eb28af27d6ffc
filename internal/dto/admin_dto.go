package dto

import (
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// AdminUserListRequest defines filters for the admin user listing.
type AdminUserListRequest struct {
	Page     int
	PageSize int
	Role     string
	Search   string
}

// AdminUserResponse serializes user data for admin endpoints.
type AdminUserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	EnrollmentID string    `json:"enrollment_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminUserListResponse wraps a paginated admin user page.
type AdminUserListResponse struct {
	Items      []AdminUserResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// DashboardStatsResponse aggregates the counters shown on the admin dashboard.
type DashboardStatsResponse struct {
	TotalUsers       int64            `json:"total_users"`
	UsersByRole      map[string]int64 `json:"users_by_role"`
	VerifiedUsers    int64            `json:"verified_users"`
	RecentSignups    int64            `json:"recent_signups"`
	TotalConnections int64            `json:"total_connections"`
	TotalPosts       int64            `json:"total_posts"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// BroadcastRequest selects recipients and the message to send them.
type BroadcastRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,gt=0"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=10000"`
}

// BroadcastResponse reports partial-failure counts for a broadcast.
type BroadcastResponse struct {
	EmailsSent   int `json:"emails_sent"`
	EmailsFailed int `json:"emails_failed"`
}

// NewAdminUserResponse maps a user model onto the admin response shape.
func NewAdminUserResponse(user models.User) AdminUserResponse {
	return AdminUserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		EnrollmentID: user.EnrollmentID,
		CreatedAt:    user.CreatedAt,
	}
}
