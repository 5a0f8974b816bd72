package models

import "gorm.io/gorm"

type Supplier struct {
	gorm.Model
	CompanyCode  string `json:"company_code" gorm:"uniqueIndex:idx_supplier_company_code"`
	SupplierCode string `json:"supplier_code" gorm:"uniqueIndex:idx_supplier_company_code"`
	SupplierName string `json:"supplier_name"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	SuppCountry  string `json:"supp_country"`
	SuppPhone    string `json:"supp_phone"`
	SuppEmail    string `json:"supp_email"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
