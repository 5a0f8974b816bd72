package models

import "gorm.io/gorm"

type Location struct {
	gorm.Model
	CompanyCode  string `json:"company_code" gorm:"uniqueIndex:idx_location_company_code"`
	LocationCode string `json:"location_code" gorm:"uniqueIndex:idx_location_company_code"`
	LocationName string `json:"location_name"`
	Zone         string `json:"zone"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
