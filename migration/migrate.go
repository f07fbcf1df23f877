package migration

import (
	"parttrack/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Job{},
		&models.Bom{},
		&models.BomItem{},
		&models.Container{},
		&models.ContainerItem{},
		&models.Location{},
		&models.Category{},
		&models.InventoryHistory{},
	)
}
