package models

import "time"

type ScheduledVisit struct {
	Base
	MachineID string    `json:"machineId" gorm:"size:36;not null;index"`
	Machine   *Machine  `json:"machine,omitempty"`
	VisitDate time.Time `json:"visitDate" gorm:"index"`
	Notes     string    `json:"notes"`
}
