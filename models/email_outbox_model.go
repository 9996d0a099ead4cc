package models

import "time"

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// EmailOutbox is a persisted notification intent. Rows are written in the
// same transaction as the business write they belong to and delivered
// asynchronously by the outbox dispatcher.
type EmailOutbox struct {
	Base
	ToAddr   string `json:"to" gorm:"not null"`
	ReplyTo  string `json:"replyTo"`
	Subject  string `json:"subject"`
	TextBody string `json:"textBody" gorm:"type:text"`
	HTMLBody string `json:"htmlBody" gorm:"type:text"`

	Status        string     `json:"status" gorm:"index;default:pending"`
	Attempts      int        `json:"attempts"`
	NextAttemptAt time.Time  `json:"nextAttemptAt" gorm:"index"`
	LastError     string     `json:"lastError"`
	SentAt        *time.Time `json:"sentAt"`
}

func (EmailOutbox) TableName() string {
	return "email_outbox"
}
