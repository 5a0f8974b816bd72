package controllers

import (
	"errors"

	"apparel-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type productForm struct {
	SKU         string `json:"sku" validate:"required"`
	StyleCode   string `json:"style_code" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Uom         string `json:"uom"`
	UnitPrice   string `json:"unit_price"`
}

func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input productForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	unitPrice := decimal.Zero
	if input.UnitPrice != "" {
		parsed, err := decimal.NewFromString(input.UnitPrice)
		if err != nil || parsed.IsNegative() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit price"})
		}
		unitPrice = parsed
	}

	product := models.Product{
		CompanyCode: ctx.Locals("companyCode").(string),
		SKU:         input.SKU,
		StyleCode:   input.StyleCode,
		ProductName: input.ProductName,
		Category:    input.Category,
		Color:       input.Color,
		Size:        input.Size,
		Uom:         input.Uom,
		UnitPrice:   unitPrice,
		CreatedBy:   int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product created successfully", "data": product})
}

func (c *ProductController) GetAllProducts(ctx *fiber.Ctx) error {
	var products []models.Product
	if err := c.DB.Where("company_code = ?", ctx.Locals("companyCode")).Find(&products).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Products found", "data": products})
}

func (c *ProductController) GetProductBySKU(ctx *fiber.Ctx) error {
	sku := ctx.Params("sku")

	var product models.Product
	if err := c.DB.First(&product, "company_code = ? AND sku = ?", ctx.Locals("companyCode"), sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product found", "data": product})
}

func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	sku := ctx.Params("sku")

	var input productForm
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var product models.Product
	if err := c.DB.First(&product, "company_code = ? AND sku = ?", ctx.Locals("companyCode"), sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if input.UnitPrice != "" {
		parsed, err := decimal.NewFromString(input.UnitPrice)
		if err != nil || parsed.IsNegative() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit price"})
		}
		product.UnitPrice = parsed
	}

	product.StyleCode = input.StyleCode
	product.ProductName = input.ProductName
	product.Category = input.Category
	product.Color = input.Color
	product.Size = input.Size
	product.Uom = input.Uom
	product.UpdatedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Save(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product updated successfully", "data": product})
}

func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	sku := ctx.Params("sku")

	var product models.Product
	if err := c.DB.First(&product, "company_code = ? AND sku = ?", ctx.Locals("companyCode"), sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}
