package workers

import (
	"context"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// MessageSender is satisfied by *gomail.Dialer.
type MessageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Dispatcher drains the email outbox. Rows are written inside business
// transactions and delivered here, so an SMTP outage never fails an API
// request.
type Dispatcher struct {
	DB          *gorm.DB
	Logger      *logrus.Logger
	Sender      MessageSender
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

func NewDispatcher(db *gorm.DB, logger *logrus.Logger, sender MessageSender, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		DB:          db,
		Logger:      logger,
		Sender:      sender,
		Interval:    interval,
		BatchSize:   20,
		MaxAttempts: 5,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	d.Logger.WithField("interval", d.Interval.String()).Info("email outbox dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.Logger.Info("email outbox dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.ProcessOnce(); err != nil {
				d.Logger.WithError(err).Error("outbox pass failed")
			}
		}
	}
}

// ProcessOnce delivers one batch of due pending rows.
func (d *Dispatcher) ProcessOnce() error {
	var rows []models.EmailOutbox
	err := d.DB.
		Where("status = ? AND next_attempt_at <= ?", models.OutboxStatusPending, time.Now()).
		Order("next_attempt_at asc").
		Limit(d.BatchSize).
		Find(&rows).Error
	if err != nil {
		return err
	}

	for i := range rows {
		d.deliver(&rows[i])
	}
	return nil
}

func (d *Dispatcher) deliver(row *models.EmailOutbox) {
	log := d.Logger.WithFields(logrus.Fields{"outbox_id": row.ID, "to": row.ToAddr})

	if err := d.Sender.DialAndSend(services.BuildMessage(*row)); err != nil {
		d.markFailed(row, err)
		log.WithError(err).WithField("attempts", row.Attempts).Warn("email delivery failed")
		return
	}

	now := time.Now()
	err := d.DB.Model(row).Updates(map[string]interface{}{
		"status":  models.OutboxStatusSent,
		"sent_at": now,
	}).Error
	if err != nil {
		log.WithError(err).Error("could not mark outbox row sent")
		return
	}
	log.Info("email sent")
}

func (d *Dispatcher) markFailed(row *models.EmailOutbox, sendErr error) {
	row.Attempts++
	updates := map[string]interface{}{
		"attempts":   row.Attempts,
		"last_error": sendErr.Error(),
	}
	if row.Attempts >= d.MaxAttempts {
		updates["status"] = models.OutboxStatusFailed
	} else {
		updates["next_attempt_at"] = time.Now().Add(backoff(row.Attempts))
	}
	if err := d.DB.Model(row).Updates(updates).Error; err != nil {
		d.Logger.WithError(err).Error("could not record outbox failure")
	}
}

// backoff doubles per attempt with jitter so retries spread out.
func backoff(attempts int) time.Duration {
	base := time.Duration(1<<uint(attempts)) * 30 * time.Second
	jitter := time.Duration(rand.Int63n(int64(base / 4)))
	return base + jitter
}
