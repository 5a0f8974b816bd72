package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	CompanyCode string          `json:"company_code" gorm:"uniqueIndex:idx_product_company_sku"`
	SKU         string          `json:"sku" gorm:"column:sku;uniqueIndex:idx_product_company_sku"`
	StyleCode   string          `json:"style_code"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Uom         string          `json:"uom"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(18,2)"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}
