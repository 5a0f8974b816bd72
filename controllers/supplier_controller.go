package controllers

import (
	"errors"
	"fmt"
	"strings"

	"apparel-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type SupplierController struct {
	DB *gorm.DB
}

type supplierForm struct {
	SupplierCode string `json:"supplier_code"`
	SupplierName string `json:"supplier_name"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	SuppCountry  string `json:"supp_country"`
	SuppPhone    string `json:"supp_phone"`
	SuppEmail    string `json:"supp_email"`
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input supplierForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.SupplierCode == "" || input.SupplierName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "supplier_code and supplier_name are required"})
	}

	supplier := models.Supplier{
		CompanyCode:  ctx.Locals("companyCode").(string),
		SupplierCode: input.SupplierCode,
		SupplierName: input.SupplierName,
		SuppAddr1:    input.SuppAddr1,
		SuppCity:     input.SuppCity,
		SuppCountry:  input.SuppCountry,
		SuppPhone:    input.SuppPhone,
		SuppEmail:    input.SuppEmail,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&supplier).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier created successfully", "data": supplier})
}

func (c *SupplierController) GetAllSuppliers(ctx *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).Find(&suppliers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Suppliers found", "data": suppliers})
}

func (c *SupplierController) GetSupplierByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Supplier
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier found", "data": result})
}

func (c *SupplierController) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input supplierForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier := models.Supplier{
		SupplierCode: input.SupplierCode,
		SupplierName: input.SupplierName,
		SuppAddr1:    input.SuppAddr1,
		SuppCity:     input.SuppCity,
		SuppCountry:  input.SuppCountry,
		SuppPhone:    input.SuppPhone,
		SuppEmail:    input.SuppEmail,
		UpdatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&supplier).Where("id = ? AND company_code = ?", id, ctx.Locals("companyCode")).Updates(supplier).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier updated successfully", "data": supplier})
}

func (c *SupplierController) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var supplier models.Supplier
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&supplier).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier deleted successfully"})
}

// UploadSuppliersFromExcel reads rows of supplier_code | supplier_name |
// address | city | country | phone | email from the first sheet.
func (c *SupplierController) UploadSuppliersFromExcel(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	fileContent, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid excel file"})
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	companyCode := ctx.Locals("companyCode").(string)
	userID := int(ctx.Locals("userID").(float64))

	var inserted int
	var skipped []string
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		supplier := models.Supplier{
			CompanyCode:  companyCode,
			SupplierCode: strings.TrimSpace(row[0]),
			SupplierName: strings.TrimSpace(row[1]),
			CreatedBy:    userID,
		}
		if len(row) > 2 {
			supplier.SuppAddr1 = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			supplier.SuppCity = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			supplier.SuppCountry = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			supplier.SuppPhone = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			supplier.SuppEmail = strings.TrimSpace(row[6])
		}

		var existing models.Supplier
		err := c.DB.Where("company_code = ? AND supplier_code = ?", companyCode, supplier.SupplierCode).First(&existing).Error
		if err == nil {
			skipped = append(skipped, supplier.SupplierCode)
			continue
		}

		if err := c.DB.Create(&supplier).Error; err != nil {
			skipped = append(skipped, supplier.SupplierCode)
			continue
		}
		inserted++
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d suppliers imported, %d skipped", inserted, len(skipped)),
		"data":    fiber.Map{"inserted": inserted, "skipped": skipped},
	})
}
