package dto

import (
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// ActivityListRequest defines filters for listing audit entries.
type ActivityListRequest struct {
	Page     int
	PageSize int
	Action   string
	UserID   uint
	// Actions restricts results to a fixed set, used by the login-log view.
	Actions []string
}

// ActivityResponse serializes a single audit entry.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	Action    string                 `json:"action"`
	UserID    uint                   `json:"user_id"`
	UserEmail string                 `json:"user_email"`
	UserRole  string                 `json:"user_role"`
	IPAddress string                 `json:"ip_address"`
	UserAgent string                 `json:"user_agent"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActivityListResponse wraps a paginated audit log page.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// PurgeTokenResponse returns the confirmation token required to delete all logs.
type PurgeTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// PurgeRequest acknowledges the irreversible delete-all-logs action.
type PurgeRequest struct {
	ConfirmationToken string `json:"confirmation_token" validate:"required"`
}

// PurgeResponse reports how many entries were removed.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// NewActivityResponse maps an audit entry model onto its response shape.
func NewActivityResponse(entry models.UserActivity) ActivityResponse {
	metadata := map[string]interface{}{}
	for key, value := range entry.Metadata {
		metadata[key] = value
	}

	return ActivityResponse{
		ID:        entry.ID,
		Action:    entry.Action,
		UserID:    entry.UserID,
		UserEmail: entry.UserEmail,
		UserRole:  entry.UserRole,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt,
	}
}
