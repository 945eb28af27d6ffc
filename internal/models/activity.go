package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions recorded in the audit trail.
const (
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// UserActivity is an append-only audit record of a security-relevant event.
// UserEmail and UserRole are snapshots taken at write time so the entry stays
// faithful to the state of the account when the event happened.
type UserActivity struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Action    string            `gorm:"size:16;index;not null" json:"action"`
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	UserEmail string            `gorm:"size:255;not null" json:"user_email"`
	UserRole  string            `gorm:"size:32;not null" json:"user_role"`
	IPAddress string            `gorm:"size:64" json:"ip_address"`
	UserAgent string            `gorm:"size:512" json:"user_agent"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
}
