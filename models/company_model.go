package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	CompanyCode string `json:"company_code" gorm:"unique"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}
