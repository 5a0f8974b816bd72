package repositories

import (
	"context"
	"errors"
	"testing"

	"apparel-app/apperrors"
	"apparel-app/controllers/idgen"
	"apparel-app/migration"
	"apparel-app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	idgen.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive across the pool
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Migrate(db))
	return db
}

// seedPO creates the supplier, products, a location and an approved PO with
// two lines: 100 of TS-BLK-M and 50 of TS-BLK-L at 10% tolerance.
func seedPO(t *testing.T, db *gorm.DB) *models.PurchaseOrderHeader {
	t.Helper()

	supplier := models.Supplier{CompanyCode: "APRL", SupplierCode: "SUP-001", SupplierName: "Mills Garment Co"}
	require.NoError(t, db.Create(&supplier).Error)

	products := []models.Product{
		{CompanyCode: "APRL", SKU: "TS-BLK-M", StyleCode: "TS-001", ProductName: "Tee Black M", UnitPrice: decimal.NewFromFloat(4.50)},
		{CompanyCode: "APRL", SKU: "TS-BLK-L", StyleCode: "TS-001", ProductName: "Tee Black L", UnitPrice: decimal.NewFromFloat(4.50)},
	}
	require.NoError(t, db.Create(&products).Error)

	location := models.Location{CompanyCode: "APRL", LocationCode: "RCV-01", LocationName: "Receiving Dock", Zone: "INBOUND"}
	require.NoError(t, db.Create(&location).Error)

	repo := NewPurchaseOrderRepository(db)
	header, err := repo.CreatePO(CreatePOInput{
		CompanyCode:    "APRL",
		SupplierCode:   "SUP-001",
		ToleranceLimit: 10,
		DeliveryDate:   "2026-09-15",
		Items: []models.FormItemPO{
			{SKU: "TS-BLK-M", Quantity: 100, UnitPrice: "4.50"},
			{SKU: "TS-BLK-L", Quantity: 50, UnitPrice: "4.50"},
		},
		UserID: 1,
	})
	require.NoError(t, err)

	approved, err := repo.Approve("APRL", header.PoNumber, 1)
	require.NoError(t, err)
	return approved
}

func receivingLine(sku string, qty int) models.FormGRNItem {
	return models.FormGRNItem{SKU: sku, ReceivedQty: qty, LocationId: 1}
}

func TestRemainingQty(t *testing.T) {
	db := newTestDB(t)
	po := seedPO(t, db)
	repo := NewGRNRepository(db)

	t.Run("fresh po", func(t *testing.T) {
		result, err := repo.RemainingQty("APRL", po.PoNumber, "TS-BLK-M")
		require.NoError(t, err)
		assert.Equal(t, 100, result.OrderedQty)
		assert.Equal(t, 110, result.MaxQty)
		assert.Equal(t, 0, result.TotalReceived)
		assert.Equal(t, 110, result.RemainingQty)
	})

	t.Run("unknown po", func(t *testing.T) {
		_, err := repo.RemainingQty("APRL", "PO-APRL-9999", "TS-BLK-M")
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("sku not on po", func(t *testing.T) {
		_, err := repo.RemainingQty("APRL", po.PoNumber, "TS-RED-M")
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("shrinks as receipts accumulate", func(t *testing.T) {
		_, err := repo.CreateGRN(context.Background(), CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items:           []models.FormGRNItem{receivingLine("TS-BLK-M", 40)},
		})
		require.NoError(t, err)

		result, err := repo.RemainingQty("APRL", po.PoNumber, "TS-BLK-M")
		require.NoError(t, err)
		assert.Equal(t, 40, result.TotalReceived)
		assert.Equal(t, 70, result.RemainingQty)
	})
}

func TestCreateGRN(t *testing.T) {
	ctx := context.Background()

	t.Run("partial receipt", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		result, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			BatchNumber:     "BATCH-01",
			Items: []models.FormGRNItem{
				receivingLine("TS-BLK-M", 60),
				receivingLine("TS-BLK-L", 20),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "GRN-APRL-0001", result.GrnId)
		assert.Equal(t, models.GRNStatusPartial, result.Status)
		assert.Equal(t, 2, result.ItemsCount)

		var items []models.GRNItem
		require.NoError(t, db.Where("grn_id = ?", result.GrnId).Order("id").Find(&items).Error)
		require.Len(t, items, 2)
		assert.Equal(t, 50, items[0].RemainingQty) // 110 - 60
		assert.Equal(t, models.GRNItemStatusPartial, items[0].Status)
		assert.Equal(t, 35, items[1].RemainingQty) // 55 - 20
	})

	t.Run("receipt up to the tolerance ceiling completes the line", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		result, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items:           []models.FormGRNItem{receivingLine("TS-BLK-M", 110)},
		})
		require.NoError(t, err)

		var item models.GRNItem
		require.NoError(t, db.First(&item, "grn_id = ? AND sku = ?", result.GrnId, "TS-BLK-M").Error)
		assert.Equal(t, models.GRNItemStatusReceived, item.Status)
		assert.Equal(t, 0, item.RemainingQty)
	})

	t.Run("over-commit on one line rejected", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items:           []models.FormGRNItem{receivingLine("TS-BLK-M", 111)},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "TS-BLK-M", validation.SKU)
		assert.Equal(t, 111, validation.Requested)
		assert.Equal(t, 110, validation.Remaining)
	})

	t.Run("same sku twice in one batch cannot exceed the ceiling", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items: []models.FormGRNItem{
				receivingLine("TS-BLK-M", 60),
				receivingLine("TS-BLK-M", 60),
			},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, 1, validation.LineIndex)
		assert.Equal(t, 50, validation.Remaining)

		// The batch's own accumulation is not a concurrent receipt; a retry
		// of the same payload could never succeed
		var conflict *apperrors.ConflictError
		assert.False(t, errors.As(err, &conflict))
	})

	t.Run("rejected batch leaves no trace", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items: []models.FormGRNItem{
				receivingLine("TS-BLK-L", 10),  // fine on its own
				receivingLine("TS-BLK-M", 200), // over the ceiling
			},
		})
		require.Error(t, err)

		var headers, items int64
		db.Model(&models.GRNHeader{}).Count(&headers)
		db.Model(&models.GRNItem{}).Count(&items)
		assert.Zero(t, headers)
		assert.Zero(t, items)

		total, err := repo.TotalReceived("APRL", po.PoNumber, "TS-BLK-L")
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("unknown sku rejected before any write", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items:           []models.FormGRNItem{receivingLine("TS-RED-M", 5)},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "TS-RED-M", validation.SKU)
	})

	t.Run("unknown po", func(t *testing.T) {
		db := newTestDB(t)
		seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        "PO-APRL-9999",
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items:           []models.FormGRNItem{receivingLine("TS-BLK-M", 5)},
		})
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("structural validation reports the line", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:        po.PoNumber,
			CompanyCode:     "APRL",
			WarehouseUserID: 2,
			Items: []models.FormGRNItem{
				receivingLine("TS-BLK-M", 10),
				{SKU: "TS-BLK-L", ReceivedQty: 0, LocationId: 1},
			},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "received_qty", validation.Field)
		assert.Equal(t, 1, validation.LineIndex)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		_, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber:    po.PoNumber,
			CompanyCode: "APRL",
		})
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("sequential grn numbers", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		first, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 10)},
		})
		require.NoError(t, err)
		second, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 10)},
		})
		require.NoError(t, err)

		assert.Equal(t, "GRN-APRL-0001", first.GrnId)
		assert.Equal(t, "GRN-APRL-0002", second.GrnId)
	})

	t.Run("top-up batch completes the header", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		first, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{
				receivingLine("TS-BLK-M", 100),
				receivingLine("TS-BLK-L", 55),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, models.GRNStatusPartial, first.Status)

		// The final 10 of TS-BLK-M reaches its ceiling, and it is the only
		// SKU this batch touches
		second, err := repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 10)},
		})
		require.NoError(t, err)
		assert.Equal(t, models.GRNStatusCompleted, second.Status)

		remaining, err := repo.RemainingQty("APRL", po.PoNumber, "TS-BLK-M")
		require.NoError(t, err)
		assert.Zero(t, remaining.RemainingQty)
	})

	t.Run("zero tolerance caps at the ordered quantity", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		poRepo := NewPurchaseOrderRepository(db)
		po, err := poRepo.CreatePO(CreatePOInput{
			CompanyCode:    "APRL",
			SupplierCode:   "SUP-001",
			ToleranceLimit: 0,
			Items:          []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}},
			UserID:         1,
		})
		require.NoError(t, err)
		repo := NewGRNRepository(db)

		_, err = repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 8)},
		})
		require.NoError(t, err)

		_, err = repo.CreateGRN(ctx, CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 5)},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, 2, validation.Remaining)

		// The rejected batch left the remaining quantity untouched
		result, err := repo.RemainingQty("APRL", po.PoNumber, "TS-BLK-M")
		require.NoError(t, err)
		assert.Equal(t, 2, result.RemainingQty)

		// Repeated reads with no intervening writes agree
		again, err := repo.RemainingQty("APRL", po.PoNumber, "TS-BLK-M")
		require.NoError(t, err)
		assert.Equal(t, result, again)
	})

	t.Run("totals never decrease across batches", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)
		repo := NewGRNRepository(db)

		prev := 0
		for _, qty := range []int{15, 25, 5} {
			_, err := repo.CreateGRN(ctx, CreateGRNInput{
				PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
				Items: []models.FormGRNItem{receivingLine("TS-BLK-M", qty)},
			})
			require.NoError(t, err)

			total, err := repo.TotalReceived("APRL", po.PoNumber, "TS-BLK-M")
			require.NoError(t, err)
			assert.Equal(t, prev+qty, total)
			prev = total
		}
	})
}

func TestLostRace(t *testing.T) {
	// Committed total unchanged since the pre-check: the request was
	// oversized as submitted, whether by one line or the batch's own
	// earlier lines
	assert.False(t, lostRace(50, 50))

	// A competing receipt landed between the pre-check and the locked read
	assert.True(t, lostRace(50, 70))
}

func TestGRNReports(t *testing.T) {
	db := newTestDB(t)
	po := seedPO(t, db)
	repo := NewGRNRepository(db)

	created, err := repo.CreateGRN(context.Background(), CreateGRNInput{
		PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
		BatchNumber:   "BATCH-07",
		InvoiceNumber: "INV-1001",
		Items: []models.FormGRNItem{
			receivingLine("TS-BLK-M", 30),
			receivingLine("TS-BLK-L", 10),
		},
	})
	require.NoError(t, err)

	t.Run("history", func(t *testing.T) {
		list, err := repo.GetGRNHistory("APRL")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.GrnId, list[0].GrnId)
		assert.Equal(t, "Mills Garment Co", list[0].SupplierName)
		assert.Equal(t, 2, list[0].TotalLine)
		assert.Equal(t, 40, list[0].TotalQty)
	})

	t.Run("history scoped by company", func(t *testing.T) {
		list, err := repo.GetGRNHistory("OTHER")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("details", func(t *testing.T) {
		details, err := repo.GetGRNDetails("APRL", created.GrnId)
		require.NoError(t, err)
		assert.Equal(t, po.PoNumber, details.Header.PoNumber)
		require.Len(t, details.Items, 2)
		assert.Equal(t, "Tee Black M", details.Items[0].ProductName)
		assert.Equal(t, "RCV-01", details.Items[0].LocationCode)
	})

	t.Run("details not found", func(t *testing.T) {
		_, err := repo.GetGRNDetails("APRL", "GRN-APRL-9999")
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
