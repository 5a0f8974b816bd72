// database/seeder.go
package database

import (
	"errors"
	"log"

	"apparel-app/config"
	"apparel-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedCompany(db)
	SeedUserMaster(db)
	SeedLocations(db)
	SeedSuppliers(db)
	SeedProducts(db)
}

func SeedCompany(db *gorm.DB) {
	company := models.Company{
		CompanyCode: config.CompanyCode,
		CompanyName: "Apparel Trading Co.",
		Country:     "ID",
	}

	var existing models.Company
	err := db.Where("company_code = ?", company.CompanyCode).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&company).Error; err != nil {
				log.Fatalf("Failed to seed company: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	user := models.User{
		Username:    "admin",
		Password:    string(hashed),
		Name:        "Administrator",
		Email:       "admin@apparel.local",
		Role:        "admin",
		CompanyCode: config.CompanyCode,
	}

	var existing models.User
	err = db.Where("username = ?", user.Username).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Fatalf("Failed to seed user: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedLocations(db *gorm.DB) {
	locations := []models.Location{
		{CompanyCode: config.CompanyCode, LocationCode: "RCV-01", LocationName: "Receiving Dock 1", Zone: "INBOUND"},
		{CompanyCode: config.CompanyCode, LocationCode: "RCV-02", LocationName: "Receiving Dock 2", Zone: "INBOUND"},
		{CompanyCode: config.CompanyCode, LocationCode: "STG-01", LocationName: "Staging Area", Zone: "STAGING"},
	}

	for _, location := range locations {
		var existing models.Location
		err := db.Where("company_code = ? AND location_code = ?", location.CompanyCode, location.LocationCode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&location)
		}
	}
}

func SeedSuppliers(db *gorm.DB) {
	suppliers := []models.Supplier{
		{CompanyCode: config.CompanyCode, SupplierCode: "SUP-001", SupplierName: "Garment Mills Ltd.", SuppCountry: "ID", SuppEmail: "orders@garmentmills.example"},
		{CompanyCode: config.CompanyCode, SupplierCode: "SUP-002", SupplierName: "Textile Works Co.", SuppCountry: "VN", SuppEmail: "sales@textileworks.example"},
	}

	for _, supplier := range suppliers {
		var existing models.Supplier
		err := db.Where("company_code = ? AND supplier_code = ?", supplier.CompanyCode, supplier.SupplierCode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&supplier)
		}
	}
}

func SeedProducts(db *gorm.DB) {
	products := []models.Product{
		{CompanyCode: config.CompanyCode, SKU: "TS-BLK-M", StyleCode: "TS-001", ProductName: "Basic Tee Black M", Category: "T-Shirts", Color: "Black", Size: "M", Uom: "PCS"},
		{CompanyCode: config.CompanyCode, SKU: "TS-BLK-L", StyleCode: "TS-001", ProductName: "Basic Tee Black L", Category: "T-Shirts", Color: "Black", Size: "L", Uom: "PCS"},
		{CompanyCode: config.CompanyCode, SKU: "HD-GRY-M", StyleCode: "HD-014", ProductName: "Fleece Hoodie Grey M", Category: "Hoodies", Color: "Grey", Size: "M", Uom: "PCS"},
	}

	for _, product := range products {
		var existing models.Product
		err := db.Where("company_code = ? AND sku = ?", product.CompanyCode, product.SKU).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&product)
		}
	}
}
