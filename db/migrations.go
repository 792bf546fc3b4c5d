package db

import (
	"tradehub/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(gdb *gorm.DB) error {
	m := gormigrate.New(gdb, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_master_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Brand{}, &models.Category{}, &models.Unit{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("units", "categories", "brands")
			},
		},
		{
			ID: "20250110_create_marketplace_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Product{}, &models.Requirement{}, &models.Offer{}, &models.Bid{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("bids", "offers", "requirements", "products")
			},
		},
		{
			ID: "20250114_create_logistics",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Logistics{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("logistics")
			},
		},
	})
	return m.Migrate()
}
