package utils

import (
	"apparel-app/models"

	"gorm.io/gorm"
)

func InsertActivityLog(db *gorm.DB, log models.ActivityLog) {
	db.Create(&log)
}
