package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"github.com/KenseiEmam/infinity-maintenance-backend/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlanExpiryRunner marks overdue active plans expired and notifies the
// plan owner. Each plan transitions in its own transaction, so one bad
// record never blocks the rest of the sweep.
type PlanExpiryRunner struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Interval time.Duration
}

func NewPlanExpiryRunner(db *gorm.DB, logger *logrus.Logger, interval time.Duration) *PlanExpiryRunner {
	return &PlanExpiryRunner{DB: db, Logger: logger, Interval: interval}
}

func (r *PlanExpiryRunner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.WithField("interval", r.Interval.String()).Info("plan expiry runner started")
	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("plan expiry runner stopped")
			return
		case <-ticker.C:
			if err := r.RunOnce(); err != nil {
				r.Logger.WithError(err).Error("plan expiry sweep failed")
			}
		}
	}
}

// RunOnce performs a single sweep. Re-running after a partial failure
// picks up only the plans still marked active.
func (r *PlanExpiryRunner) RunOnce() error {
	var plans []models.Plan
	err := r.DB.Preload("User").
		Where("status = ? AND expiry_date <= ?", models.PlanStatusActive, time.Now()).
		Find(&plans).Error
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}

	for i := range plans {
		plan := &plans[i]
		if err := r.expire(plan); err != nil {
			r.Logger.WithError(err).WithField("plan_id", plan.ID).Error("could not expire plan")
		}
	}
	r.Logger.WithField("count", len(plans)).Info("plan expiry sweep done")
	return nil
}

func (r *PlanExpiryRunner) expire(plan *models.Plan) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Plan{}).
			Where("id = ? AND status = ?", plan.ID, models.PlanStatusActive).
			Update("status", models.PlanStatusExpired)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already expired by a concurrent sweep.
			return nil
		}

		if plan.User == nil || plan.User.Email == "" {
			return nil
		}
		return services.EnqueueEmail(tx, services.Email{
			To:      plan.User.Email,
			Subject: "Your maintenance plan has expired",
			HTML: fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Your <strong>%s</strong> plan expired on %s.</p>
        <p>Please contact us to renew your coverage.</p>
      `, plan.User.Name, plan.Type, plan.ExpiryDate.Format("02 Jan 2006")),
		})
	})
}
