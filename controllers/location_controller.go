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

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

type locationForm struct {
	LocationCode string `json:"location_code"`
	LocationName string `json:"location_name"`
	Zone         string `json:"zone"`
}

func (c *LocationController) CreateLocation(ctx *fiber.Ctx) error {
	var input locationForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.LocationCode == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "location_code is required"})
	}

	location := models.Location{
		CompanyCode:  ctx.Locals("companyCode").(string),
		LocationCode: input.LocationCode,
		LocationName: input.LocationName,
		Zone:         input.Zone,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Location created successfully", "data": location})
}

func (c *LocationController) GetAllLocations(ctx *fiber.Ctx) error {
	var locations []models.Location
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).Find(&locations).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Locations found", "data": locations})
}

func (c *LocationController) UpdateLocation(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input locationForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	location := models.Location{
		LocationCode: input.LocationCode,
		LocationName: input.LocationName,
		Zone:         input.Zone,
		UpdatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&location).Where("id = ? AND company_code = ?", id, ctx.Locals("companyCode")).Updates(location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Location updated successfully", "data": location})
}

func (c *LocationController) DeleteLocation(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var location models.Location
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Location deleted successfully"})
}

// UploadLocationsFromExcel reads rows of location_code | location_name | zone
// from the first sheet.
func (c *LocationController) UploadLocationsFromExcel(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	fileContent, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer fileContent.Close()

	excelFile, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid excel file"})
	}
	defer excelFile.Close()

	sheetName := excelFile.GetSheetName(0)
	rows, err := excelFile.GetRows(sheetName)
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
		if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		location := models.Location{
			CompanyCode:  companyCode,
			LocationCode: strings.TrimSpace(row[0]),
			CreatedBy:    userID,
		}
		if len(row) > 1 {
			location.LocationName = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			location.Zone = strings.TrimSpace(row[2])
		}

		var existing models.Location
		err := c.DB.Where("company_code = ? AND location_code = ?", companyCode, location.LocationCode).First(&existing).Error
		if err == nil {
			skipped = append(skipped, location.LocationCode)
			continue
		}

		if err := c.DB.Create(&location).Error; err != nil {
			skipped = append(skipped, location.LocationCode)
			continue
		}
		inserted++
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d locations imported, %d skipped", inserted, len(skipped)),
		"data":    fiber.Map{"inserted": inserted, "skipped": skipped},
	})
}
