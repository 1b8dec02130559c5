package models

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAuditor UserRole = "auditor"
)

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        UserRole   `gorm:"not null;default:'auditor'" json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Audits      []Audit    `gorm:"foreignKey:UserID" json:"audits,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
