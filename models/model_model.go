package models

// Manufacturer of the machines serviced by the company.
type Manufacturer struct {
	Base
	Name string `json:"name" gorm:"not null"`
}

// Model is a machine model belonging to a manufacturer.
type Model struct {
	Base
	Name           string        `json:"name" gorm:"not null"`
	ManufacturerID string        `json:"manufacturerId" gorm:"size:36;not null;index"`
	Manufacturer   *Manufacturer `json:"manufacturer,omitempty"`
}
