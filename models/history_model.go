package models

import "gorm.io/gorm"

type ActivityLog struct {
	gorm.Model
	CompanyCode string `json:"company_code"`
	UserID      int    `json:"user_id"`
	Action      string `json:"action"`
	RefNo       string `json:"ref_no"`
	Detail      string `json:"detail"`
}
