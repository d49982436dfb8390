package models

import "time"

// Roles recognized by the API. The engine trusts the role carried in the
// session token; it never re-checks it against the row.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "TPO_ADMIN"
)

// User is an authenticated account. Students additionally own a Student
// profile row linked by UserID. The password hash never serializes into
// API responses.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"size:256;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:STUDENT" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`

	Student *Student `gorm:"foreignKey:UserID" json:"student,omitempty"`
}
