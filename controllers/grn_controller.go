package controllers

import (
	"fmt"
	"time"

	"apparel-app/apperrors"
	"apparel-app/config"
	"apparel-app/models"
	"apparel-app/repositories"
	"apparel-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type GRNController struct {
	DB *gorm.DB
}

func NewGRNController(DB *gorm.DB) *GRNController {
	return &GRNController{DB: DB}
}

// GetRemainingQty reports how much of a PO line can still be received,
// after the tolerance ceiling and all committed receipts.
func (c *GRNController) GetRemainingQty(ctx *fiber.Ctx) error {
	poNumber := ctx.Query("po_number")
	sku := ctx.Query("sku")
	if poNumber == "" || sku == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "po_number and sku are required",
		})
	}

	repo := repositories.NewGRNRepository(c.DB)
	result, err := repo.RemainingQty(ctx.Locals("companyCode").(string), poNumber, sku)
	if err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": result})
}

type validateItemForm struct {
	PoNumber    string `json:"po_number" validate:"required"`
	SKU         string `json:"sku" validate:"required"`
	ReceivedQty int    `json:"received_qty" validate:"required,min=1"`
}

// ValidateItem checks a single line against the remaining quantity without
// persisting anything. Scanner stations call this per scan.
func (c *GRNController) ValidateItem(ctx *fiber.Ctx) error {
	var payload validateItemForm
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	repo := repositories.NewGRNRepository(c.DB)
	result, err := repo.RemainingQty(ctx.Locals("companyCode").(string), payload.PoNumber, payload.SKU)
	if err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if payload.ReceivedQty > result.RemainingQty {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("received_qty %d exceeds remaining quantity %d for %s", payload.ReceivedQty, result.RemainingQty, payload.SKU),
			"data":    result,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Quantity can be received",
		"data":    result,
	})
}

type createGRNForm struct {
	PoNumber      string               `json:"po_number" validate:"required"`
	ReceivedDate  string               `json:"received_date"`
	BatchNumber   string               `json:"batch_number"`
	InvoiceNumber string               `json:"invoice_number"`
	Reference     string               `json:"reference"`
	SupplierId    int                  `json:"supplier_id"`
	Items         []models.FormGRNItem `json:"items" validate:"required,dive"`
}

func (c *GRNController) CreateGRN(ctx *fiber.Ctx) error {
	var payload createGRNForm
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	userID := int(ctx.Locals("userID").(float64))
	companyCode := ctx.Locals("companyCode").(string)

	repo := repositories.NewGRNRepository(c.DB)
	result, err := repo.CreateGRN(ctx.UserContext(), repositories.CreateGRNInput{
		PoNumber:        payload.PoNumber,
		Items:           payload.Items,
		WarehouseUserID: userID,
		CompanyCode:     companyCode,
		ReceivedDate:    payload.ReceivedDate,
		BatchNumber:     payload.BatchNumber,
		InvoiceNumber:   payload.InvoiceNumber,
		Reference:       payload.Reference,
		SupplierId:      payload.SupplierId,
	})
	if err != nil {
		config.LogError("controllers", "CreateGRN", "create grn", payload.PoNumber, err)
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create GRN",
			"error":   err.Error(),
		})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		CompanyCode: companyCode,
		UserID:      userID,
		Action:      "grn_created",
		RefNo:       result.GrnId,
		Detail:      payload.PoNumber,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "GRN created successfully",
		"data":    result,
	})
}

func (c *GRNController) GetGRNHistory(ctx *fiber.Ctx) error {
	repo := repositories.NewGRNRepository(c.DB)
	list, err := repo.GetGRNHistory(ctx.Locals("companyCode").(string))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": list})
}

func (c *GRNController) GetGRNDetails(ctx *fiber.Ctx) error {
	grnId := ctx.Params("grn_id")

	repo := repositories.NewGRNRepository(c.DB)
	details, err := repo.GetGRNDetails(ctx.Locals("companyCode").(string), grnId)
	if err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": details})
}

// ExportGRNHistory streams the receiving history as an Excel workbook.
func (c *GRNController) ExportGRNHistory(ctx *fiber.Ctx) error {
	repo := repositories.NewGRNRepository(c.DB)
	list, err := repo.GetGRNHistory(ctx.Locals("companyCode").(string))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "GRN History"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"GRN ID", "PO Number", "Status", "Received Date", "Batch Number", "Invoice Number", "Supplier", "Total Line", "Total Qty"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range list {
		values := []interface{}{
			item.GrnId, item.PoNumber, item.Status, item.ReceivedDate,
			item.BatchNumber, item.InvoiceNumber, item.SupplierName,
			item.TotalLine, item.TotalQty,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("grn_history_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Send(buf.Bytes())
}
