package category

import (
	"errors"

	"parttrack/models"

	"gorm.io/gorm"
)

// SeedCategories inserts the default work categories that don't exist yet.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Lighting", Description: "Fixtures, lamps and controls"},
		{Name: "Gear", Description: "Switchgear, panels and distribution"},
		{Name: "Outdoor", Description: "Site lighting and exterior work"},
	}

	for _, c := range categories {
		var existing models.Category
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
