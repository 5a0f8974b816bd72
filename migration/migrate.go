package migration

import (
	"apparel-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Role{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Supplier{},
		&models.Product{},
		&models.Location{},
		&models.PurchaseOrderHeader{},
		&models.PurchaseOrderItem{},
		&models.GRNHeader{},
		&models.GRNItem{},
		&models.DocumentSequence{},
		&models.ActivityLog{},
	)
}
