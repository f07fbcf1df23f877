package repositories

import (
	"context"
	"time"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/types"

	"gorm.io/gorm"
)

type ContainerRepository struct {
	db *gorm.DB
}

func NewContainerRepository(db *gorm.DB) *ContainerRepository {
	return &ContainerRepository{db: db}
}

// Create inserts the container together with its items.
func (r *ContainerRepository) Create(ctx context.Context, c *models.Container) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "container")
	}
	return nil
}

func (r *ContainerRepository) FindByID(ctx context.Context, id types.SnowflakeID) (*models.Container, error) {
	var c models.Container
	err := r.db.WithContext(ctx).Preload("Items").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "container %s", id)
	}
	return &c, nil
}

// List returns containers newest first, optionally for one job.
func (r *ContainerRepository) List(ctx context.Context, jobNumber string) ([]models.Container, error) {
	var containers []models.Container
	q := r.db.WithContext(ctx).Preload("Items").Order("receipt_date DESC, id DESC")
	if jobNumber != "" {
		q = q.Where("job_number = ?", jobNumber)
	}
	if err := q.Find(&containers).Error; err != nil {
		return nil, translate(err, "container list")
	}
	return containers, nil
}

// ShelvedIn lists the containers currently assigned to shelf.
func (r *ContainerRepository) ShelvedIn(ctx context.Context, shelf string) ([]models.Container, error) {
	var containers []models.Container
	if err := r.db.WithContext(ctx).Where("shelf_location = ?", shelf).Find(&containers).Error; err != nil {
		return nil, translate(err, "containers on shelf %s", shelf)
	}
	return containers, nil
}

// UpdateShelf moves a container; a nil shelf takes it off the shelves.
func (r *ContainerRepository) UpdateShelf(ctx context.Context, id types.SnowflakeID, shelf *string) error {
	res := r.db.WithContext(ctx).Model(&models.Container{}).Where("id = ?", id).
		Updates(map[string]interface{}{"shelf_location": shelf, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return translate(res.Error, "container %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("container %s not found", id)
	}
	return nil
}

func (r *ContainerRepository) MarkShipped(ctx context.Context, id types.SnowflakeID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Container{}).Where("id = ?", id).
		Updates(map[string]interface{}{"last_shipped_at": at, "updated_at": at})
	if res.Error != nil {
		return translate(res.Error, "container %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("container %s not found", id)
	}
	return nil
}

func (r *ContainerRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("container_id = ?", id).Delete(&models.ContainerItem{}).Error; err != nil {
		return translate(err, "items of container %s", id)
	}
	res := db.Delete(&models.Container{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "container %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("container %s not found", id)
	}
	return nil
}
