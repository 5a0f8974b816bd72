package models

import (
	"apparel-app/controllers/idgen"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	POStatusPending  = "pending"
	POStatusApproved = "approved"
)

type PurchaseOrderHeader struct {
	gorm.Model
	ID             int64   `json:"id" gorm:"primary_key"`
	PoNumber       string  `json:"po_number" gorm:"unique"`
	CompanyCode    string  `json:"company_code"`
	SupplierId     int     `json:"supplier_id"`
	Supplier       string  `json:"supplier"`
	Status         string  `json:"status" gorm:"default:'pending'"`
	ToleranceLimit float64 `json:"tolerance_limit"`
	DeliveryDate   string  `gorm:"type:date" json:"delivery_date"`
	Remarks        string  `json:"remarks"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int

	// Relations
	Items []PurchaseOrderItem `gorm:"foreignKey:PoId;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (h *PurchaseOrderHeader) BeforeCreate(tx *gorm.DB) (err error) {
	h.ID = idgen.GenerateID()
	return
}

type PurchaseOrderItem struct {
	gorm.Model
	PoId       int64           `json:"po_id" gorm:"default:null"`
	PoNumber   string          `json:"po_number"`
	SKU        string          `json:"sku" gorm:"column:sku"`
	StyleCode  string          `json:"style_code"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(18,2)"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(18,2)"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}

// FormItemPO is the request payload for one PO line.
type FormItemPO struct {
	SKU       string `json:"sku" validate:"required"`
	StyleCode string `json:"style_code"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	UnitPrice string `json:"unit_price" validate:"required"`
}
