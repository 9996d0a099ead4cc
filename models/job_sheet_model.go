package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobSheet documents a single maintenance or repair visit on a machine.
// SpareParts and LaserData are owned collections: they exist only in the
// context of their sheet and are reconciled as a whole on every update.
type JobSheet struct {
	Base
	SheetNo    string    `json:"sheetNo" gorm:"uniqueIndex"`
	Date       time.Time `json:"date"`
	CallID     *string   `json:"callId" gorm:"size:36;index"`
	Call       *Call     `json:"call,omitempty"`
	CustomerID *string   `json:"customerId" gorm:"size:36;index"`
	Customer   *Customer `json:"customer,omitempty"`
	MachineID  *string   `json:"machineId" gorm:"size:36;index"`
	Machine    *Machine  `json:"machine,omitempty"`
	EngineerID *string   `json:"engineerId" gorm:"size:36;index"`
	Engineer   *User     `json:"engineer,omitempty" gorm:"foreignKey:EngineerID"`

	ProblemReported string `json:"problemReported" gorm:"type:text"`
	WorkCarriedOut  string `json:"workCarriedOut" gorm:"type:text"`
	Recommendations string `json:"recommendations" gorm:"type:text"`

	SpareParts  []SparePart      `json:"spareParts"`
	LaserData   []LaserDataEntry `json:"laserData"`
	Attachments []Attachment     `json:"attachments"`
}

type SparePart struct {
	Base
	JobSheetID  string          `json:"jobSheetId" gorm:"size:36;not null;index"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost" gorm:"type:decimal(10,2)"`
}

type LaserDataEntry struct {
	Base
	JobSheetID    string `json:"jobSheetId" gorm:"size:36;not null;index"`
	Mode          string `json:"mode"`
	PowerReading  string `json:"powerReading"`
	EnergyReading string `json:"energyReading"`
	Remarks       string `json:"remarks"`
}

func (LaserDataEntry) TableName() string {
	return "laser_data_entries"
}

// Attachment points at a file stored in object storage. Created by the
// upload path only, removed when its sheet is deleted.
type Attachment struct {
	Base
	JobSheetID string `json:"jobSheetId" gorm:"size:36;not null;index"`
	URL        string `json:"url" gorm:"not null"`
	FileType   string `json:"fileType"`
}
