package models

import "time"

// Call is a reported service call, optionally assigned to an engineer.
type Call struct {
	Base
	CustomerID   string     `json:"customerId" gorm:"size:36;not null;index"`
	Customer     *Customer  `json:"customer,omitempty"`
	MachineID    *string    `json:"machineId" gorm:"size:36;index"`
	Machine      *Machine   `json:"machine,omitempty"`
	Description  string     `json:"description" gorm:"type:text;not null"`
	CallTime     time.Time  `json:"callTime"`
	AssignedToID *string    `json:"assignedToId" gorm:"size:36;index"`
	AssignedTo   *User      `json:"assignedTo,omitempty" gorm:"foreignKey:AssignedToID"`
	AssignedAt   *time.Time `json:"assignedAt"`
}
