package repositories

import (
	"context"
	"errors"
	"strings"

	"apparel-app/apperrors"
	"apparel-app/models"
	"apparel-app/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GRNRepository struct {
	db *gorm.DB
}

func NewGRNRepository(db *gorm.DB) *GRNRepository {
	return &GRNRepository{db: db}
}

// RemainingQtyResult is the remaining-quantity report for one PO line.
type RemainingQtyResult struct {
	PoNumber       string  `json:"po_number"`
	SKU            string  `json:"sku"`
	OrderedQty     int     `json:"ordered_qty"`
	ToleranceLimit float64 `json:"tolerance_limit"`
	MaxQty         int     `json:"max_qty"`
	TotalReceived  int     `json:"total_received"`
	RemainingQty   int     `json:"remaining_qty"`
}

// CreateGRNInput is one receiving event, possibly covering several SKUs of
// the same PO.
type CreateGRNInput struct {
	PoNumber        string
	Items           []models.FormGRNItem
	WarehouseUserID int
	CompanyCode     string
	ReceivedDate    string
	BatchNumber     string
	InvoiceNumber   string
	Reference       string
	SupplierId      int
}

type CreateGRNResult struct {
	GrnId      string `json:"grn_id"`
	Status     string `json:"status"`
	ItemsCount int    `json:"items_count"`
}

// TotalReceived sums received_qty across every committed GRN item for the
// (po_number, sku) pair. No rows means 0, not an error.
func (r *GRNRepository) TotalReceived(companyCode string, poNumber string, sku string) (int, error) {
	sql := `SELECT COALESCE(SUM(a.received_qty), 0) AS total
	FROM grn_items a
	INNER JOIN grn_headers b ON a.grn_header_id = b.id
	WHERE b.company_code = ? AND a.po_number = ? AND a.sku = ?
	AND a.deleted_at IS NULL AND b.deleted_at IS NULL`

	var total int
	if err := r.db.Raw(sql, companyCode, poNumber, sku).Scan(&total).Error; err != nil {
		return 0, &apperrors.PersistenceError{Op: "sum received qty", Err: err}
	}
	return total, nil
}

// RemainingQty combines the PO item's tolerance ceiling with the receipt
// total for the SKU.
func (r *GRNRepository) RemainingQty(companyCode string, poNumber string, sku string) (RemainingQtyResult, error) {
	var result RemainingQtyResult

	var header models.PurchaseOrderHeader
	if err := r.db.First(&header, "company_code = ? AND po_number = ?", companyCode, poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, &apperrors.NotFoundError{Entity: "purchase order", Key: poNumber}
		}
		return result, &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}

	var item models.PurchaseOrderItem
	if err := r.db.First(&item, "po_id = ? AND sku = ?", header.ID, sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, &apperrors.NotFoundError{Entity: "po item", Key: poNumber + "/" + sku}
		}
		return result, &apperrors.PersistenceError{Op: "load po item", Err: err}
	}

	total, err := r.TotalReceived(companyCode, poNumber, sku)
	if err != nil {
		return result, err
	}

	maxQty := services.MaxQty(item.Quantity, header.ToleranceLimit)
	result = RemainingQtyResult{
		PoNumber:       poNumber,
		SKU:            sku,
		OrderedQty:     item.Quantity,
		ToleranceLimit: header.ToleranceLimit,
		MaxQty:         maxQty,
		TotalReceived:  total,
		RemainingQty:   services.RemainingQty(maxQty, total),
	}
	return result, nil
}

// CreateGRN atomically applies a batch of receipt lines. Every line is
// validated against the tolerance-adjusted ceiling, a GRN number is drawn
// from the company counter, and the header plus items are committed as one
// unit. Remaining quantities are re-read under a row lock inside the
// transaction; a line that passed the pre-check but fails the locked
// re-check lost a race with a concurrent receipt and is reported as a
// conflict instead of a plain validation failure.
func (r *GRNRepository) CreateGRN(ctx context.Context, input CreateGRNInput) (CreateGRNResult, error) {
	var result CreateGRNResult

	if len(input.Items) == 0 {
		return result, &apperrors.ValidationError{Message: "grn_items must not be empty"}
	}
	for i, line := range input.Items {
		if strings.TrimSpace(line.SKU) == "" {
			return result, &apperrors.ValidationError{Message: "invalid grn line", Field: "sku", LineIndex: i}
		}
		if line.ReceivedQty <= 0 {
			return result, &apperrors.ValidationError{Message: "received_qty must be a positive integer", Field: "received_qty", LineIndex: i}
		}
		if line.LocationId == 0 {
			return result, &apperrors.ValidationError{Message: "invalid grn line", Field: "location_id", LineIndex: i}
		}
	}

	var header models.PurchaseOrderHeader
	if err := r.db.Preload("Items").First(&header, "company_code = ? AND po_number = ?", input.CompanyCode, input.PoNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, &apperrors.NotFoundError{Entity: "purchase order", Key: input.PoNumber}
		}
		return result, &apperrors.PersistenceError{Op: "load purchase order", Err: err}
	}

	// Authoritative ceiling table for the whole batch
	maxQtys := make(map[string]int, len(header.Items))
	for _, item := range header.Items {
		maxQtys[item.SKU] = services.MaxQty(item.Quantity, header.ToleranceLimit)
	}
	itemsBySKU := make(map[string]models.PurchaseOrderItem, len(header.Items))
	for _, item := range header.Items {
		itemsBySKU[item.SKU] = item
	}
	for i, line := range input.Items {
		if _, ok := itemsBySKU[line.SKU]; !ok {
			return result, &apperrors.ValidationError{Message: "sku not on purchase order", Field: "sku", LineIndex: i, SKU: line.SKU}
		}
	}

	// Pre-transaction committed totals per SKU. The locked in-transaction
	// read is compared against these to tell a stale read (conflict) apart
	// from a plainly oversized request (validation).
	preTotals := make(map[string]int, len(input.Items))
	for _, line := range input.Items {
		if _, ok := preTotals[line.SKU]; ok {
			continue
		}
		total, err := r.TotalReceived(input.CompanyCode, input.PoNumber, line.SKU)
		if err != nil {
			return result, err
		}
		preTotals[line.SKU] = total
	}

	supplierId := input.SupplierId
	if supplierId == 0 {
		supplierId = header.SupplierId
	}

	txCtx, cancel := context.WithTimeout(ctx, grnTxTimeout())
	defer cancel()

	err := r.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		// Serialize receipts for this PO on its item rows
		var lockedItems []models.PurchaseOrderItem
		if err := lockForUpdate(tx).Where("po_id = ?", header.ID).Find(&lockedItems).Error; err != nil {
			return &apperrors.PersistenceError{Op: "lock po items", Err: err}
		}

		// Cumulative received per SKU as of this transaction, then batch-local
		// running totals so one batch cannot over-commit a SKU across its own
		// lines either
		baseTotals := make(map[string]int, len(input.Items))
		newTotals := make(map[string]int, len(input.Items))
		for i, line := range input.Items {
			if _, ok := newTotals[line.SKU]; !ok {
				var total int
				sql := `SELECT COALESCE(SUM(a.received_qty), 0) AS total
				FROM grn_items a
				INNER JOIN grn_headers b ON a.grn_header_id = b.id
				WHERE b.company_code = ? AND a.po_number = ? AND a.sku = ?
				AND a.deleted_at IS NULL AND b.deleted_at IS NULL`
				if err := tx.Raw(sql, input.CompanyCode, input.PoNumber, line.SKU).Scan(&total).Error; err != nil {
					return &apperrors.PersistenceError{Op: "sum received qty", Err: err}
				}
				baseTotals[line.SKU] = total
				newTotals[line.SKU] = total
			}

			remaining := services.RemainingQty(maxQtys[line.SKU], newTotals[line.SKU])
			if line.ReceivedQty > remaining {
				if lostRace(preTotals[line.SKU], baseTotals[line.SKU]) {
					return &apperrors.ConflictError{SKU: line.SKU, Requested: line.ReceivedQty, Remaining: remaining}
				}
				return &apperrors.ValidationError{
					Message:   "received_qty exceeds remaining quantity",
					LineIndex: i,
					SKU:       line.SKU,
					Requested: line.ReceivedQty,
					Remaining: remaining,
				}
			}
			newTotals[line.SKU] += line.ReceivedQty
		}

		grnId, err := NextDocumentNo(tx, input.CompanyCode, "GRN")
		if err != nil {
			return &apperrors.PersistenceError{Op: "allocate grn number", Err: err}
		}

		receivedDate := input.ReceivedDate
		if receivedDate == "" {
			receivedDate = nowDate()
		}

		grnHeader := models.GRNHeader{
			GrnId:         grnId,
			PoNumber:      input.PoNumber,
			CompanyCode:   input.CompanyCode,
			SupplierId:    supplierId,
			Status:        services.BatchStatus(newTotals, maxQtys),
			ReceivedDate:  receivedDate,
			BatchNumber:   input.BatchNumber,
			InvoiceNumber: input.InvoiceNumber,
			Reference:     input.Reference,
			CreatedBy:     input.WarehouseUserID,
		}

		if err := tx.Create(&grnHeader).Error; err != nil {
			return &apperrors.PersistenceError{Op: "insert grn header", Err: err}
		}

		// Per-line snapshots replay the running totals in line order
		runningTotals := make(map[string]int, len(baseTotals))
		for sku, total := range baseTotals {
			runningTotals[sku] = total
		}

		for _, line := range input.Items {
			poItem := itemsBySKU[line.SKU]
			newTotal := runningTotals[line.SKU] + line.ReceivedQty
			runningTotals[line.SKU] = newTotal

			grnItem := models.GRNItem{
				GrnHeaderId:  grnHeader.ID,
				GrnId:        grnId,
				PoNumber:     input.PoNumber,
				SKU:          line.SKU,
				StyleCode:    line.StyleCode,
				OrderedQty:   poItem.Quantity,
				ReceivedQty:  line.ReceivedQty,
				RemainingQty: services.RemainingQty(maxQtys[line.SKU], newTotal),
				Status:       services.ItemStatus(newTotal, maxQtys[line.SKU]),
				LocationId:   line.LocationId,
				LotNo:        line.LotNo,
				Notes:        line.Notes,
				CreatedBy:    input.WarehouseUserID,
			}

			if err := tx.Create(&grnItem).Error; err != nil {
				return &apperrors.PersistenceError{Op: "insert grn item", Err: err}
			}
		}

		result = CreateGRNResult{
			GrnId:      grnId,
			Status:     grnHeader.Status,
			ItemsCount: len(input.Items),
		}
		return nil
	})

	if err != nil {
		result = CreateGRNResult{}
		var validationErr *apperrors.ValidationError
		var notFoundErr *apperrors.NotFoundError
		var conflictErr *apperrors.ConflictError
		var persistenceErr *apperrors.PersistenceError
		if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) ||
			errors.As(err, &conflictErr) || errors.As(err, &persistenceErr) {
			return result, err
		}
		return result, &apperrors.PersistenceError{Op: "grn transaction", Err: err}
	}

	return result, nil
}

type ListGRN struct {
	ID            int64  `json:"id"`
	GrnId         string `json:"grn_id"`
	PoNumber      string `json:"po_number"`
	Status        string `json:"status"`
	ReceivedDate  string `json:"received_date"`
	BatchNumber   string `json:"batch_number"`
	InvoiceNumber string `json:"invoice_number"`
	SupplierName  string `json:"supplier_name"`
	TotalLine     int    `json:"total_line"`
	TotalQty      int    `json:"total_qty"`
}

func (r *GRNRepository) GetGRNHistory(companyCode string) ([]ListGRN, error) {
	sql := `WITH detail AS (
				SELECT grn_header_id, COUNT(sku) AS total_line, SUM(received_qty) AS total_qty
				FROM grn_items WHERE deleted_at IS NULL GROUP BY grn_header_id
			)
			SELECT a.id, a.grn_id, a.po_number, a.status, a.received_date,
			a.batch_number, a.invoice_number,
			s.supplier_name, b.total_line, b.total_qty
			FROM grn_headers a
			LEFT JOIN detail b ON a.id = b.grn_header_id
			LEFT JOIN suppliers s ON a.supplier_id = s.id
			WHERE a.company_code = ? AND a.deleted_at IS NULL
			ORDER BY a.created_at DESC`

	var list []ListGRN
	if err := r.db.Raw(sql, companyCode).Scan(&list).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "grn history", Err: err}
	}
	return list, nil
}

type GRNDetailItem struct {
	SKU          string `json:"sku"`
	StyleCode    string `json:"style_code"`
	ProductName  string `json:"product_name"`
	OrderedQty   int    `json:"ordered_qty"`
	ReceivedQty  int    `json:"received_qty"`
	RemainingQty int    `json:"remaining_qty"`
	Status       string `json:"status"`
	LocationCode string `json:"location_code"`
	LotNo        string `json:"lot_no"`
	Notes        string `json:"notes"`
}

type GRNDetails struct {
	Header models.GRNHeader `json:"header"`
	Items  []GRNDetailItem  `json:"items"`
}

func (r *GRNRepository) GetGRNDetails(companyCode string, grnId string) (GRNDetails, error) {
	var details GRNDetails

	if err := r.db.First(&details.Header, "company_code = ? AND grn_id = ?", companyCode, grnId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return details, &apperrors.NotFoundError{Entity: "grn", Key: grnId}
		}
		return details, &apperrors.PersistenceError{Op: "load grn header", Err: err}
	}

	sql := `SELECT a.sku, a.style_code, p.product_name,
	a.ordered_qty, a.received_qty, a.remaining_qty, a.status,
	l.location_code, a.lot_no, a.notes
	FROM grn_items a
	LEFT JOIN products p ON a.sku = p.sku AND p.company_code = ?
	LEFT JOIN locations l ON a.location_id = l.id
	WHERE a.grn_header_id = ? AND a.deleted_at IS NULL
	ORDER BY a.id ASC`

	if err := r.db.Raw(sql, companyCode, details.Header.ID).Scan(&details.Items).Error; err != nil {
		return details, &apperrors.PersistenceError{Op: "load grn items", Err: err}
	}

	return details, nil
}

// lostRace reports whether the committed total for a SKU moved between the
// unlocked pre-check and the locked in-transaction read. An over-commit with
// an unmoved total was oversized as submitted, including one the batch's own
// earlier lines caused, and stays a validation failure.
func lostRace(preTotal, lockedTotal int) bool {
	return lockedTotal != preTotal
}

// lockForUpdate adds a row lock where the dialect supports it. sqlite has a
// single writer and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
