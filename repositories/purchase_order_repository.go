package repositories

import (
	"errors"

	"apparel-app/apperrors"
	"apparel-app/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

type CreatePOInput struct {
	CompanyCode    string
	SupplierCode   string
	ToleranceLimit float64
	DeliveryDate   string
	Remarks        string
	Items          []models.FormItemPO
	UserID         int
}

// resolveItems parses the request lines into PO item rows with computed
// decimal totals.
func resolveItems(lines []models.FormItemPO, userID int) ([]models.PurchaseOrderItem, error) {
	if len(lines) == 0 {
		return nil, &apperrors.ValidationError{Message: "items must not be empty"}
	}

	items := make([]models.PurchaseOrderItem, 0, len(lines))
	for i, line := range lines {
		if line.SKU == "" {
			return nil, &apperrors.ValidationError{Message: "invalid po line", Field: "sku", LineIndex: i}
		}
		if line.Quantity <= 0 {
			return nil, &apperrors.ValidationError{Message: "quantity must be a positive integer", Field: "quantity", LineIndex: i}
		}
		unitPrice, err := decimal.NewFromString(line.UnitPrice)
		if err != nil || unitPrice.IsNegative() {
			return nil, &apperrors.ValidationError{Message: "invalid unit price", Field: "unit_price", LineIndex: i}
		}

		items = append(items, models.PurchaseOrderItem{
			SKU:        line.SKU,
			StyleCode:  line.StyleCode,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			CreatedBy:  userID,
		})
	}
	return items, nil
}

func (r *PurchaseOrderRepository) CreatePO(input CreatePOInput) (*models.PurchaseOrderHeader, error) {
	if input.ToleranceLimit < 0 {
		return nil, &apperrors.ValidationError{Message: "tolerance_limit must not be negative", Field: "tolerance_limit"}
	}

	var supplier models.Supplier
	if err := r.db.First(&supplier, "company_code = ? AND supplier_code = ?", input.CompanyCode, input.SupplierCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "supplier", Key: input.SupplierCode}
		}
		return nil, &apperrors.PersistenceError{Op: "load supplier", Err: err}
	}

	items, err := resolveItems(input.Items, input.UserID)
	if err != nil {
		return nil, err
	}

	// Every sku must exist in the product master
	for i, item := range items {
		var product models.Product
		if err := r.db.First(&product, "company_code = ? AND sku = ?", input.CompanyCode, item.SKU).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &apperrors.ValidationError{Message: "unknown sku", Field: "sku", LineIndex: i, SKU: item.SKU}
			}
			return nil, &apperrors.PersistenceError{Op: "load product", Err: err}
		}
		if items[i].StyleCode == "" {
			items[i].StyleCode = product.StyleCode
		}
	}

	var header models.PurchaseOrderHeader
	err = r.db.Transaction(func(tx *gorm.DB) error {
		poNumber, err := NextDocumentNo(tx, input.CompanyCode, "PO")
		if err != nil {
			return &apperrors.PersistenceError{Op: "allocate po number", Err: err}
		}

		header = models.PurchaseOrderHeader{
			PoNumber:       poNumber,
			CompanyCode:    input.CompanyCode,
			SupplierId:     int(supplier.ID),
			Supplier:       supplier.SupplierCode,
			Status:         models.POStatusPending,
			ToleranceLimit: input.ToleranceLimit,
			DeliveryDate:   input.DeliveryDate,
			Remarks:        input.Remarks,
			CreatedBy:      input.UserID,
			UpdatedBy:      input.UserID,
		}

		if err := tx.Create(&header).Error; err != nil {
			return &apperrors.PersistenceError{Op: "insert po header", Err: err}
		}

		for i := range items {
			items[i].PoId = header.ID
			items[i].PoNumber = poNumber
			if err := tx.Create(&items[i]).Error; err != nil {
				return &apperrors.PersistenceError{Op: "insert po item", Err: err}
			}
		}

		header.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &header, nil
}

// HasReceipts reports whether any GRN references the PO.
func (r *PurchaseOrderRepository) HasReceipts(companyCode string, poNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GRNHeader{}).
		Where("company_code = ? AND po_number = ?", companyCode, poNumber).
		Count(&count).Error
	if err != nil {
		return false, &apperrors.PersistenceError{Op: "count receipts", Err: err}
	}
	return count > 0, nil
}

type UpdatePOInput struct {
	SupplierCode   string
	ToleranceLimit float64
	DeliveryDate   string
	Remarks        string
	Items          []models.FormItemPO
	UserID         int
}

// UpdatePO replaces the full item set. Rejected once any GRN references the
// PO; receiving snapshots would go stale otherwise.
func (r *PurchaseOrderRepository) UpdatePO(companyCode string, poNumber string, input UpdatePOInput) (*models.PurchaseOrderHeader, error) {
	if input.ToleranceLimit < 0 {
		return nil, &apperrors.ValidationError{Message: "tolerance_limit must not be negative", Field: "tolerance_limit"}
	}

	var header models.PurchaseOrderHeader
	if err := r.db.First(&header, "company_code = ? AND po_number = ?", companyCode, poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "purchase order", Key: poNumber}
		}
		return nil, &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}

	received, err := r.HasReceipts(companyCode, poNumber)
	if err != nil {
		return nil, err
	}
	if received {
		return nil, &apperrors.ValidationError{Message: "purchase order already has receipts and cannot be modified"}
	}

	var supplier models.Supplier
	if err := r.db.First(&supplier, "company_code = ? AND supplier_code = ?", companyCode, input.SupplierCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "supplier", Key: input.SupplierCode}
		}
		return nil, &apperrors.PersistenceError{Op: "load supplier", Err: err}
	}

	items, err := resolveItems(input.Items, input.UserID)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		header.SupplierId = int(supplier.ID)
		header.Supplier = supplier.SupplierCode
		header.ToleranceLimit = input.ToleranceLimit
		header.DeliveryDate = input.DeliveryDate
		header.Remarks = input.Remarks
		header.UpdatedBy = input.UserID

		if err := tx.Save(&header).Error; err != nil {
			return &apperrors.PersistenceError{Op: "update po header", Err: err}
		}

		// Full replacement, hard delete
		if err := tx.Unscoped().Where("po_id = ?", header.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return &apperrors.PersistenceError{Op: "delete po items", Err: err}
		}

		for i := range items {
			items[i].PoId = header.ID
			items[i].PoNumber = header.PoNumber
			if err := tx.Create(&items[i]).Error; err != nil {
				return &apperrors.PersistenceError{Op: "insert po item", Err: err}
			}
		}

		header.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &header, nil
}

// DeletePO removes the PO and its items. Rejected after any receiving.
func (r *PurchaseOrderRepository) DeletePO(companyCode string, poNumber string) error {
	var header models.PurchaseOrderHeader
	if err := r.db.First(&header, "company_code = ? AND po_number = ?", companyCode, poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Entity: "purchase order", Key: poNumber}
		}
		return &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}

	received, err := r.HasReceipts(companyCode, poNumber)
	if err != nil {
		return err
	}
	if received {
		return &apperrors.ValidationError{Message: "purchase order already has receipts and cannot be deleted"}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("po_id = ?", header.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return &apperrors.PersistenceError{Op: "delete po items", Err: err}
		}
		if err := tx.Unscoped().Delete(&header).Error; err != nil {
			return &apperrors.PersistenceError{Op: "delete po header", Err: err}
		}
		return nil
	})
}

// Approve moves a pending PO to approved.
func (r *PurchaseOrderRepository) Approve(companyCode string, poNumber string, userID int) (*models.PurchaseOrderHeader, error) {
	var header models.PurchaseOrderHeader
	if err := r.db.First(&header, "company_code = ? AND po_number = ?", companyCode, poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "purchase order", Key: poNumber}
		}
		return nil, &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}

	if header.Status == models.POStatusApproved {
		return nil, &apperrors.ValidationError{Message: "purchase order already approved"}
	}

	header.Status = models.POStatusApproved
	header.UpdatedBy = userID
	if err := r.db.Save(&header).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "approve purchase order", Err: err}
	}

	return &header, nil
}

type ListPO struct {
	ID             int64   `json:"id"`
	PoNumber       string  `json:"po_number"`
	Status         string  `json:"status"`
	ToleranceLimit float64 `json:"tolerance_limit"`
	DeliveryDate   string  `json:"delivery_date"`
	SupplierName   string  `json:"supplier_name"`
	TotalLine      int     `json:"total_line"`
	TotalQty       int     `json:"total_qty"`
	QtyReceived    int     `json:"qty_received"`
}

func (r *PurchaseOrderRepository) GetAllPO(companyCode string) ([]ListPO, error) {
	sql := `WITH detail AS (
				SELECT po_id, COUNT(sku) AS total_line, SUM(quantity) AS total_qty
				FROM purchase_order_items WHERE deleted_at IS NULL GROUP BY po_id
			),
			received AS (
				SELECT a.po_number, SUM(a.received_qty) AS qty_received
				FROM grn_items a
				INNER JOIN grn_headers b ON a.grn_header_id = b.id
				WHERE a.deleted_at IS NULL AND b.deleted_at IS NULL
				GROUP BY a.po_number
			)
			SELECT a.id, a.po_number, a.status, a.tolerance_limit, a.delivery_date,
			s.supplier_name, b.total_line, b.total_qty, COALESCE(rc.qty_received, 0) AS qty_received
			FROM purchase_order_headers a
			LEFT JOIN detail b ON a.id = b.po_id
			LEFT JOIN suppliers s ON a.supplier_id = s.id
			LEFT JOIN received rc ON a.po_number = rc.po_number
			WHERE a.company_code = ? AND a.deleted_at IS NULL
			ORDER BY a.created_at DESC`

	var list []ListPO
	if err := r.db.Raw(sql, companyCode).Scan(&list).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "po list", Err: err}
	}
	return list, nil
}

// GetPurchaseOrderDetails loads the header with its items for the company.
func (r *PurchaseOrderRepository) GetPurchaseOrderDetails(companyCode string, poNumber string) (*models.PurchaseOrderHeader, error) {
	var header models.PurchaseOrderHeader
	if err := r.db.Preload("Items").First(&header, "company_code = ? AND po_number = ?", companyCode, poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "purchase order", Key: poNumber}
		}
		return nil, &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}
	return &header, nil
}
