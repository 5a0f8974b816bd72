package controllers

import (
	"apparel-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(DB *gorm.DB) *DashboardController {
	return &DashboardController{DB: DB}
}

// GetSummary returns the back-office landing counts for the company.
func (c *DashboardController) GetSummary(ctx *fiber.Ctx) error {
	companyCode := ctx.Locals("companyCode").(string)

	var totalPO, openPO, totalGRN, totalSupplier, totalProduct int64

	c.DB.Model(&models.PurchaseOrderHeader{}).Where("company_code = ?", companyCode).Count(&totalPO)
	c.DB.Model(&models.PurchaseOrderHeader{}).
		Where("company_code = ? AND status IN ?", companyCode, []string{models.POStatusPending, models.POStatusApproved}).
		Count(&openPO)
	c.DB.Model(&models.GRNHeader{}).Where("company_code = ?", companyCode).Count(&totalGRN)
	c.DB.Model(&models.Supplier{}).Where("company_code = ?", companyCode).Count(&totalSupplier)
	c.DB.Model(&models.Product{}).Where("company_code = ?", companyCode).Count(&totalProduct)

	var recent []models.ActivityLog
	c.DB.Where("company_code = ?", companyCode).
		Order("created_at DESC").Limit(10).Find(&recent)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_po":        totalPO,
			"open_po":         openPO,
			"total_grn":       totalGRN,
			"total_supplier":  totalSupplier,
			"total_product":   totalProduct,
			"recent_activity": recent,
		},
	})
}
