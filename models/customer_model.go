package models

type Customer struct {
	Base
	Name    string `json:"name" gorm:"not null;index"`
	Address string `json:"address"`
}
