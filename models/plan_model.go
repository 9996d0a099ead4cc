package models

import "time"

const (
	PlanStatusActive  = "active"
	PlanStatusExpired = "expired"
)

// Plan is a subscription-like record expired by the scheduled job runner.
type Plan struct {
	Base
	UserID     *string   `json:"userId" gorm:"size:36;index"`
	User       *User     `json:"user,omitempty"`
	Type       string    `json:"type"`
	Status     string    `json:"status" gorm:"index;default:active"`
	ExpiryDate time.Time `json:"expiryDate" gorm:"index"`
}
