package models

import (
	"time"

	"gorm.io/datatypes"
)

// User roles supported by the platform. Role is fixed at signup and never
// migrated afterwards.
const (
	RoleStudent = "student"
	RoleAlumni  = "alumni"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// User represents a platform member of any role.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;index;not null" json:"role"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	EnrollmentID string    `gorm:"size:64;index" json:"enrollment_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Profile holds the role-specific extended attributes owned by a single user.
type Profile struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"uniqueIndex;not null" json:"user_id"`
	Course       string            `gorm:"size:128" json:"course"`
	Branch       string            `gorm:"size:128" json:"branch"`
	Year         int               `json:"year"`
	Phone        string            `gorm:"size:32" json:"phone"`
	Company      string            `gorm:"size:255" json:"company"`
	Designation  string            `gorm:"size:255" json:"designation"`
	Skills       datatypes.JSON    `gorm:"type:json" json:"skills"`
	Achievements string            `gorm:"type:text" json:"achievements"`
	SocialLinks  datatypes.JSONMap `gorm:"type:json" json:"social_links"`
	PictureURL   string            `gorm:"type:text" json:"picture_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ValidRole reports whether the given role is one the platform recognises.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleAlumni, RoleFaculty, RoleAdmin:
		return true
	default:
		return false
	}
}
