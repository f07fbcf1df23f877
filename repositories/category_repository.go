package repositories

import (
	"context"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/types"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "category %s", c.Name)
	}
	return nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error; err != nil {
		return nil, translate(err, "category %s", name)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, translate(err, "category list")
	}
	return cats, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "category %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("category %s not found", id)
	}
	return nil
}
