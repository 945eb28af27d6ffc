package models

import "time"

// Enrollment is a pre-registration record binding an institutional ID to a
// role. Signup for student/alumni/faculty accounts requires a matching entry.
// The enrollment ID is a case-sensitive string key and is unique per role.
type Enrollment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID string    `gorm:"size:64;not null;uniqueIndex:idx_enrollment_role" json:"enrollment_id"`
	Role         string    `gorm:"size:32;not null;uniqueIndex:idx_enrollment_role" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
