package controllers

import (
	"apparel-app/apperrors"
	"apparel-app/config"
	"apparel-app/models"
	"apparel-app/repositories"
	"apparel-app/services"
	"apparel-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PurchaseOrderController struct {
	DB *gorm.DB
}

func NewPurchaseOrderController(DB *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{DB: DB}
}

type purchaseOrderForm struct {
	SupplierCode   string              `json:"supplier_code" validate:"required"`
	ToleranceLimit float64             `json:"tolerance_limit" validate:"min=0"`
	DeliveryDate   string              `json:"delivery_date"`
	Remarks        string              `json:"remarks"`
	Items          []models.FormItemPO `json:"items" validate:"required,dive"`
}

func (c *PurchaseOrderController) CreatePO(ctx *fiber.Ctx) error {
	var payload purchaseOrderForm
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

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	header, err := repo.CreatePO(repositories.CreatePOInput{
		CompanyCode:    companyCode,
		SupplierCode:   payload.SupplierCode,
		ToleranceLimit: payload.ToleranceLimit,
		DeliveryDate:   payload.DeliveryDate,
		Remarks:        payload.Remarks,
		Items:          payload.Items,
		UserID:         userID,
	})
	if err != nil {
		config.LogError("controllers", "CreatePO", "create purchase order", payload.SupplierCode, err)
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create purchase order",
			"error":   err.Error(),
		})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		CompanyCode: companyCode,
		UserID:      userID,
		Action:      "po_created",
		RefNo:       header.PoNumber,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Purchase order created successfully",
		"data": fiber.Map{
			"po_number": header.PoNumber,
			"status":    header.Status,
		},
	})
}

func (c *PurchaseOrderController) GetAllPO(ctx *fiber.Ctx) error {
	repo := repositories.NewPurchaseOrderRepository(c.DB)
	result, err := repo.GetAllPO(ctx.Locals("companyCode").(string))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": result})
}

func (c *PurchaseOrderController) GetPOByNumber(ctx *fiber.Ctx) error {
	poNumber := ctx.Params("po_number")

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	header, err := repo.GetPurchaseOrderDetails(ctx.Locals("companyCode").(string), poNumber)
	if err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": header})
}

func (c *PurchaseOrderController) UpdatePO(ctx *fiber.Ctx) error {
	poNumber := ctx.Params("po_number")

	var payload purchaseOrderForm
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := int(ctx.Locals("userID").(float64))
	companyCode := ctx.Locals("companyCode").(string)

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	header, err := repo.UpdatePO(companyCode, poNumber, repositories.UpdatePOInput{
		SupplierCode:   payload.SupplierCode,
		ToleranceLimit: payload.ToleranceLimit,
		DeliveryDate:   payload.DeliveryDate,
		Remarks:        payload.Remarks,
		Items:          payload.Items,
		UserID:         userID,
	})
	if err != nil {
		config.LogError("controllers", "UpdatePO", "update purchase order", poNumber, err)
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update purchase order",
			"error":   err.Error(),
		})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		CompanyCode: companyCode,
		UserID:      userID,
		Action:      "po_updated",
		RefNo:       header.PoNumber,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order updated successfully", "data": header})
}

func (c *PurchaseOrderController) DeletePO(ctx *fiber.Ctx) error {
	poNumber := ctx.Params("po_number")
	companyCode := ctx.Locals("companyCode").(string)

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	if err := repo.DeletePO(companyCode, poNumber); err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete purchase order",
			"error":   err.Error(),
		})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		CompanyCode: companyCode,
		UserID:      int(ctx.Locals("userID").(float64)),
		Action:      "po_deleted",
		RefNo:       poNumber,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order deleted successfully"})
}

func (c *PurchaseOrderController) ApprovePO(ctx *fiber.Ctx) error {
	poNumber := ctx.Params("po_number")
	userID := int(ctx.Locals("userID").(float64))
	companyCode := ctx.Locals("companyCode").(string)

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	header, err := repo.Approve(companyCode, poNumber, userID)
	if err != nil {
		return ctx.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"message": "Failed to approve purchase order",
			"error":   err.Error(),
		})
	}

	var supplier models.Supplier
	if err := c.DB.First(&supplier, header.SupplierId).Error; err == nil {
		// Best effort, approval stands even when the mail fails
		_ = services.SendPOApprovalMail(supplier, *header)
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		CompanyCode: companyCode,
		UserID:      userID,
		Action:      "po_approved",
		RefNo:       header.PoNumber,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Purchase order approved",
		"data": fiber.Map{
			"po_number": header.PoNumber,
			"status":    header.Status,
		},
	})
}
