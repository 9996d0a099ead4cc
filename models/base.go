package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. Primary keys are string UUIDs so that
// nested child rows keep a stable identity across partial updates.
type Base struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// RecordID returns the primary key. Used by the child-collection
// reconciler as the only comparison key.
func (b Base) RecordID() string {
	return b.ID
}
