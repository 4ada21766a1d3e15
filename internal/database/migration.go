package database

import (
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

// Migrate auto-migrates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Farmer{},
		&models.MilkCollection{},
		&models.RateChart{},
		&models.Payment{},
		&models.DairyPlant{},
		&models.Dispatch{},
		&models.DairyPayment{},
		&models.Expense{},
		&models.AuditLog{},
	)
}
