package dto

import (
	"time"

	"github.com/noah-isme/alumnet-go-api/internal/models"
)

// ConnectionResponse serializes a raw connection edge.
type ConnectionResponse struct {
	ID          uint      `json:"id"`
	RequesterID uint      `json:"requester_id"`
	TargetID    uint      `json:"target_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConnectionPeerResponse pairs a connection edge with the other party's summary.
type ConnectionPeerResponse struct {
	ConnectionID uint        `json:"connection_id"`
	Status       string      `json:"status"`
	Peer         UserSummary `json:"peer"`
	ConnectedAt  time.Time   `json:"connected_at"`
}

// ConnectionListResponse wraps the "my connections" listing.
type ConnectionListResponse struct {
	Items []ConnectionPeerResponse `json:"items"`
}

// NewConnectionResponse maps a connection model onto its response shape.
func NewConnectionResponse(connection models.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:          connection.ID,
		RequesterID: connection.RequesterID,
		TargetID:    connection.TargetID,
		Status:      connection.Status,
		CreatedAt:   connection.CreatedAt,
	}
}
