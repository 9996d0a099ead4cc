package migration

import (
	"github.com/KenseiEmam/infinity-maintenance-backend/models"
	"gorm.io/gorm"
)

// Migrate runs the schema migration for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Manufacturer{},
		&models.Model{},
		&models.Machine{},
		&models.Call{},
		&models.JobSheet{},
		&models.SparePart{},
		&models.LaserDataEntry{},
		&models.Attachment{},
		&models.ScheduledVisit{},
		&models.Plan{},
		&models.EmailOutbox{},
	)
}
