package models

import (
	"apparel-app/controllers/idgen"

	"gorm.io/gorm"
)

const (
	GRNStatusPartial   = "partial"
	GRNStatusCompleted = "completed"

	GRNItemStatusPending  = "pending"
	GRNItemStatusPartial  = "partial"
	GRNItemStatusReceived = "received"
)

type GRNHeader struct {
	gorm.Model
	ID            int64  `json:"id" gorm:"primary_key"`
	GrnId         string `json:"grn_id" gorm:"column:grn_id;unique"`
	PoNumber      string `json:"po_number"`
	CompanyCode   string `json:"company_code"`
	SupplierId    int    `json:"supplier_id"`
	Status        string `json:"status" gorm:"default:'partial'"`
	ReceivedDate  string `gorm:"type:date" json:"received_date"`
	BatchNumber   string `json:"batch_number"`
	InvoiceNumber string `json:"invoice_number"`
	Reference     string `json:"reference"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int

	// Relations
	Items []GRNItem `gorm:"foreignKey:GrnHeaderId;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

func (h *GRNHeader) BeforeCreate(tx *gorm.DB) (err error) {
	h.ID = idgen.GenerateID()
	return
}

type GRNItem struct {
	gorm.Model
	GrnHeaderId  int64  `json:"grn_header_id" gorm:"default:null"`
	GrnId        string `json:"grn_id" gorm:"column:grn_id"`
	PoNumber     string `json:"po_number"`
	SKU          string `json:"sku" gorm:"column:sku"`
	StyleCode    string `json:"style_code"`
	OrderedQty   int    `json:"ordered_qty"`
	ReceivedQty  int    `json:"received_qty"`
	RemainingQty int    `json:"remaining_qty"`
	Status       string `json:"status" gorm:"default:'pending'"`
	LocationId   int    `json:"location_id"`
	LotNo        string `json:"lot_no"`
	Notes        string `json:"notes"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}

// FormGRNItem is the request payload for one receipt line.
type FormGRNItem struct {
	SKU         string `json:"sku" validate:"required"`
	StyleCode   string `json:"style_code"`
	ReceivedQty int    `json:"received_qty" validate:"required,min=1"`
	LocationId  int    `json:"location_id" validate:"required"`
	LotNo       string `json:"lot_no"`
	Notes       string `json:"notes"`
}
