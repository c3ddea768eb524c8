package models

import (
	"time"
)

// User roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a platform user. Only identity and role are needed here:
// authentication and profile management live in a separate service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Role      string    `json:"role"` // "student", "teacher"
	CreatedAt time.Time `json:"created_at"`
}
