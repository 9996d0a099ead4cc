package models

type Machine struct {
	Base
	SerialNumber  string    `json:"serialNumber" gorm:"not null;index"`
	CustomerID    string    `json:"customerId" gorm:"size:36;not null;index"`
	Customer      *Customer `json:"customer,omitempty"`
	ModelID       string    `json:"modelId" gorm:"size:36;not null;index"`
	Model         *Model    `json:"model,omitempty"`
	UnderWarranty bool      `json:"underWarranty"`

	JobSheets       []JobSheet       `json:"jobSheets,omitempty"`
	Calls           []Call           `json:"calls,omitempty"`
	ScheduledVisits []ScheduledVisit `json:"scheduledVisits,omitempty"`
}
