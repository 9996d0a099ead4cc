package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEngineer = "ENGINEER"
)

// User accounts move from invited (no password, invite token set) to active
// (password set, token cleared). The reset token pair is orthogonal and
// serves the forgot-password flow.
//
// Password and token fields are never serialized.
type User struct {
	Base
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Name  string `json:"name"`
	Role  string `json:"role" gorm:"index"`

	Password          string     `json:"-"`
	InviteToken       *string    `json:"-"`
	InviteTokenExpiry *time.Time `json:"-"`
	ResetToken        *string    `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
}
