package services

import (
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/config"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Email is an outbound message. Handlers never talk to the provider
// directly: they enqueue an intent and the outbox dispatcher delivers it.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// EnqueueEmail persists the message as a pending outbox row. Call it on the
// transaction of the business write it belongs to, so that the intent
// commits or rolls back together with the write.
func EnqueueEmail(tx *gorm.DB, e Email) error {
	row := models.EmailOutbox{
		ToAddr:        e.To,
		ReplyTo:       e.ReplyTo,
		Subject:       e.Subject,
		TextBody:      e.Text,
		HTMLBody:      e.HTML,
		Status:        models.OutboxStatusPending,
		NextAttemptAt: time.Now(),
	}
	return tx.Create(&row).Error
}

// BuildMessage converts an outbox row into a gomail message.
func BuildMessage(row models.EmailOutbox) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", config.MailFrom, config.MailFromName)
	msg.SetHeader("To", row.ToAddr)
	if row.ReplyTo != "" {
		msg.SetHeader("Reply-To", row.ReplyTo)
	}
	msg.SetHeader("Subject", row.Subject)

	if row.HTMLBody != "" {
		msg.SetBody("text/html", row.HTMLBody)
		if row.TextBody != "" {
			msg.AddAlternative("text/plain", row.TextBody)
		}
	} else {
		msg.SetBody("text/plain", row.TextBody)
	}

	return msg
}

// NewSMTPDialer builds the dialer for the configured SMTP relay.
func NewSMTPDialer() *gomail.Dialer {
	return gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
}
