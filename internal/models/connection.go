package models

import "time"

// Connection statuses. Removal deletes the edge, so there is no rejected state
// kept around.
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
)

// Connection is an edge between two users. The canonical key is the
// (requester, target) pair; reads treat the edge as symmetric.
type Connection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;uniqueIndex:idx_connection_pair" json:"requester_id"`
	TargetID    uint      `gorm:"not null;uniqueIndex:idx_connection_pair" json:"target_id"`
	Status      string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
