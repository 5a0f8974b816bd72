package repositories

import (
	"context"
	"testing"

	"apparel-app/apperrors"
	"apparel-app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMasters(t *testing.T, db *gorm.DB) {
	t.Helper()

	supplier := models.Supplier{CompanyCode: "APRL", SupplierCode: "SUP-001", SupplierName: "Mills Garment Co"}
	require.NoError(t, db.Create(&supplier).Error)

	products := []models.Product{
		{CompanyCode: "APRL", SKU: "TS-BLK-M", StyleCode: "TS-001", ProductName: "Tee Black M", UnitPrice: decimal.NewFromFloat(4.50)},
		{CompanyCode: "APRL", SKU: "TS-BLK-L", StyleCode: "TS-001", ProductName: "Tee Black L", UnitPrice: decimal.NewFromFloat(4.50)},
	}
	require.NoError(t, db.Create(&products).Error)

	location := models.Location{CompanyCode: "APRL", LocationCode: "RCV-01", LocationName: "Receiving Dock"}
	require.NoError(t, db.Create(&location).Error)
}

func TestCreatePO(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		header, err := repo.CreatePO(CreatePOInput{
			CompanyCode:    "APRL",
			SupplierCode:   "SUP-001",
			ToleranceLimit: 10,
			DeliveryDate:   "2026-09-15",
			Items: []models.FormItemPO{
				{SKU: "TS-BLK-M", Quantity: 100, UnitPrice: "4.50"},
			},
			UserID: 1,
		})
		require.NoError(t, err)

		assert.Equal(t, "PO-APRL-0001", header.PoNumber)
		assert.Equal(t, models.POStatusPending, header.Status)
		require.Len(t, header.Items, 1)
		assert.True(t, header.Items[0].TotalPrice.Equal(decimal.NewFromFloat(450)))
		// style code filled in from the product master
		assert.Equal(t, "TS-001", header.Items[0].StyleCode)
	})

	t.Run("po numbers increase per company", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		line := []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}}
		first, err := repo.CreatePO(CreatePOInput{CompanyCode: "APRL", SupplierCode: "SUP-001", Items: line, UserID: 1})
		require.NoError(t, err)
		second, err := repo.CreatePO(CreatePOInput{CompanyCode: "APRL", SupplierCode: "SUP-001", Items: line, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, "PO-APRL-0001", first.PoNumber)
		assert.Equal(t, "PO-APRL-0002", second.PoNumber)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		_, err := repo.CreatePO(CreatePOInput{
			CompanyCode:  "APRL",
			SupplierCode: "SUP-404",
			Items:        []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}},
		})
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("unknown sku", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		_, err := repo.CreatePO(CreatePOInput{
			CompanyCode:  "APRL",
			SupplierCode: "SUP-001",
			Items:        []models.FormItemPO{{SKU: "TS-RED-M", Quantity: 10, UnitPrice: "4.50"}},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "TS-RED-M", validation.SKU)
	})

	t.Run("invalid lines", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		cases := []struct {
			name  string
			items []models.FormItemPO
			field string
		}{
			{"empty items", nil, ""},
			{"zero quantity", []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 0, UnitPrice: "4.50"}}, "quantity"},
			{"bad price", []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 1, UnitPrice: "four"}}, "unit_price"},
			{"negative price", []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 1, UnitPrice: "-1"}}, "unit_price"},
		}
		for _, tc := range cases {
			_, err := repo.CreatePO(CreatePOInput{CompanyCode: "APRL", SupplierCode: "SUP-001", Items: tc.items})
			var validation *apperrors.ValidationError
			require.ErrorAs(t, err, &validation, tc.name)
			assert.Equal(t, tc.field, validation.Field, tc.name)
		}
	})

	t.Run("negative tolerance", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		_, err := repo.CreatePO(CreatePOInput{
			CompanyCode:    "APRL",
			SupplierCode:   "SUP-001",
			ToleranceLimit: -5,
			Items:          []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}},
		})
		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "tolerance_limit", validation.Field)
	})
}

func TestUpdatePO(t *testing.T) {
	t.Run("replaces the full item set", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		header, err := repo.CreatePO(CreatePOInput{
			CompanyCode:  "APRL",
			SupplierCode: "SUP-001",
			Items: []models.FormItemPO{
				{SKU: "TS-BLK-M", Quantity: 100, UnitPrice: "4.50"},
				{SKU: "TS-BLK-L", Quantity: 50, UnitPrice: "4.50"},
			},
			UserID: 1,
		})
		require.NoError(t, err)

		updated, err := repo.UpdatePO("APRL", header.PoNumber, UpdatePOInput{
			SupplierCode:   "SUP-001",
			ToleranceLimit: 5,
			Items:          []models.FormItemPO{{SKU: "TS-BLK-L", Quantity: 80, UnitPrice: "4.20"}},
			UserID:         2,
		})
		require.NoError(t, err)
		assert.Equal(t, 5.0, updated.ToleranceLimit)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, "TS-BLK-L", updated.Items[0].SKU)

		var count int64
		db.Model(&models.PurchaseOrderItem{}).Where("po_id = ?", header.ID).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("blocked after receiving starts", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)

		_, err := NewGRNRepository(db).CreateGRN(context.Background(), CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 10)},
		})
		require.NoError(t, err)

		repo := NewPurchaseOrderRepository(db)
		_, err = repo.UpdatePO("APRL", po.PoNumber, UpdatePOInput{
			SupplierCode: "SUP-001",
			Items:        []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 500, UnitPrice: "4.50"}},
		})
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestDeletePO(t *testing.T) {
	t.Run("deletes header and items", func(t *testing.T) {
		db := newTestDB(t)
		seedMasters(t, db)
		repo := NewPurchaseOrderRepository(db)

		header, err := repo.CreatePO(CreatePOInput{
			CompanyCode:  "APRL",
			SupplierCode: "SUP-001",
			Items:        []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}},
		})
		require.NoError(t, err)

		require.NoError(t, repo.DeletePO("APRL", header.PoNumber))

		_, err = repo.GetPurchaseOrderDetails("APRL", header.PoNumber)
		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("blocked after receiving starts", func(t *testing.T) {
		db := newTestDB(t)
		po := seedPO(t, db)

		_, err := NewGRNRepository(db).CreateGRN(context.Background(), CreateGRNInput{
			PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
			Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 10)},
		})
		require.NoError(t, err)

		err = NewPurchaseOrderRepository(db).DeletePO("APRL", po.PoNumber)
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestApprovePO(t *testing.T) {
	db := newTestDB(t)
	seedMasters(t, db)
	repo := NewPurchaseOrderRepository(db)

	header, err := repo.CreatePO(CreatePOInput{
		CompanyCode:  "APRL",
		SupplierCode: "SUP-001",
		Items:        []models.FormItemPO{{SKU: "TS-BLK-M", Quantity: 10, UnitPrice: "4.50"}},
	})
	require.NoError(t, err)

	approved, err := repo.Approve("APRL", header.PoNumber, 3)
	require.NoError(t, err)
	assert.Equal(t, models.POStatusApproved, approved.Status)

	_, err = repo.Approve("APRL", header.PoNumber, 3)
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestGetAllPO(t *testing.T) {
	db := newTestDB(t)
	po := seedPO(t, db)

	_, err := NewGRNRepository(db).CreateGRN(context.Background(), CreateGRNInput{
		PoNumber: po.PoNumber, CompanyCode: "APRL", WarehouseUserID: 2,
		Items: []models.FormGRNItem{receivingLine("TS-BLK-M", 30)},
	})
	require.NoError(t, err)

	repo := NewPurchaseOrderRepository(db)
	list, err := repo.GetAllPO("APRL")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, po.PoNumber, list[0].PoNumber)
	assert.Equal(t, 2, list[0].TotalLine)
	assert.Equal(t, 150, list[0].TotalQty)
	assert.Equal(t, 30, list[0].QtyReceived)
	assert.Equal(t, "Mills Garment Co", list[0].SupplierName)

	other, err := repo.GetAllPO("OTHER")
	require.NoError(t, err)
	assert.Empty(t, other)
}
