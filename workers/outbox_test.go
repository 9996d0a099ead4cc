package workers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/migration"
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

type fakeSender struct {
	fail bool
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	f.sent = append(f.sent, m...)
	return nil
}

func pendingRow(t *testing.T, db *gorm.DB, to string) models.EmailOutbox {
	t.Helper()

	row := models.EmailOutbox{
		ToAddr:        to,
		Subject:       "Test",
		TextBody:      "hello",
		Status:        models.OutboxStatusPending,
		NextAttemptAt: time.Now().Add(-time.Second),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed outbox row: %v", err)
	}
	return row
}

func TestDispatcherSendsPendingRows(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, quietLogger(), sender, time.Second)

	row := pendingRow(t, db, "one@example.com")

	if err := d.ProcessOnce(); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}

	var reloaded models.EmailOutbox
	db.First(&reloaded, "id = ?", row.ID)
	if reloaded.Status != models.OutboxStatusSent {
		t.Fatalf("expected sent, got %q", reloaded.Status)
	}
	if reloaded.SentAt == nil {
		t.Fatal("expected the send timestamped")
	}
}

func TestDispatcherDoesNotResend(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, quietLogger(), sender, time.Second)

	pendingRow(t, db, "one@example.com")

	d.ProcessOnce()
	d.ProcessOnce()

	if len(sender.sent) != 1 {
		t.Fatalf("expected a single delivery across passes, got %d", len(sender.sent))
	}
}

func TestDispatcherRetriesWithBackoff(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{fail: true}
	d := NewDispatcher(db, quietLogger(), sender, time.Second)

	row := pendingRow(t, db, "one@example.com")

	if err := d.ProcessOnce(); err != nil {
		t.Fatalf("process: %v", err)
	}

	var reloaded models.EmailOutbox
	db.First(&reloaded, "id = ?", row.ID)
	if reloaded.Status != models.OutboxStatusPending {
		t.Fatalf("expected still pending, got %q", reloaded.Status)
	}
	if reloaded.Attempts != 1 {
		t.Fatalf("expected one attempt recorded, got %d", reloaded.Attempts)
	}
	if !reloaded.NextAttemptAt.After(time.Now()) {
		t.Fatal("expected the retry pushed into the future")
	}
	if reloaded.LastError == "" {
		t.Fatal("expected the failure recorded")
	}
}

func TestDispatcherGivesUpAfterMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{fail: true}
	d := NewDispatcher(db, quietLogger(), sender, time.Second)
	d.MaxAttempts = 2

	row := pendingRow(t, db, "one@example.com")

	for i := 0; i < d.MaxAttempts; i++ {
		// Pull the retry back into the past so the next pass picks it up.
		db.Model(&models.EmailOutbox{}).Where("id = ?", row.ID).
			Update("next_attempt_at", time.Now().Add(-time.Second))
		if err := d.ProcessOnce(); err != nil {
			t.Fatalf("process: %v", err)
		}
	}

	var reloaded models.EmailOutbox
	db.First(&reloaded, "id = ?", row.ID)
	if reloaded.Status != models.OutboxStatusFailed {
		t.Fatalf("expected failed after %d attempts, got %q", d.MaxAttempts, reloaded.Status)
	}
}

func TestDispatcherSkipsFutureRows(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	d := NewDispatcher(db, quietLogger(), sender, time.Second)

	row := models.EmailOutbox{
		ToAddr:        "later@example.com",
		Status:        models.OutboxStatusPending,
		NextAttemptAt: time.Now().Add(time.Hour),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed outbox row: %v", err)
	}

	d.ProcessOnce()
	if len(sender.sent) != 0 {
		t.Fatalf("expected no delivery before the retry time, got %d", len(sender.sent))
	}
}
