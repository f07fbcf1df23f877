package repositories

import (
	"context"
	"time"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/types"

	"gorm.io/gorm"
)

type BomRepository struct {
	db *gorm.DB
}

func NewBomRepository(db *gorm.DB) *BomRepository {
	return &BomRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *BomRepository) FindByID(ctx context.Context, id types.SnowflakeID) (*models.Bom, error) {
	var bom models.Bom
	err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&bom, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "BOM %s", id)
	}
	return &bom, nil
}

// FindByJobNumber returns the BOM for a job. When a job has several, the
// oldest one wins so every caller sees the same document.
func (r *BomRepository) FindByJobNumber(ctx context.Context, jobNumber string) (*models.Bom, error) {
	var bom models.Bom
	err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("job_number = ?", jobNumber).
		Order("created_at ASC, id ASC").
		First(&bom).Error
	if err != nil {
		return nil, translate(err, "BOM for job %s", jobNumber)
	}
	return &bom, nil
}

// List returns BOMs with their items, newest first, optionally for one job.
func (r *BomRepository) List(ctx context.Context, jobNumber string) ([]models.Bom, error) {
	var boms []models.Bom
	q := r.db.WithContext(ctx).Preload("Items", preloadItems).Order("created_at DESC, id DESC")
	if jobNumber != "" {
		q = q.Where("job_number = ?", jobNumber)
	}
	if err := q.Find(&boms).Error; err != nil {
		return nil, translate(err, "BOM list")
	}
	return boms, nil
}

func (r *BomRepository) Create(ctx context.Context, bom *models.Bom) error {
	for i := range bom.Items {
		bom.Items[i].BomID = bom.ID
	}
	if err := r.db.WithContext(ctx).Create(bom).Error; err != nil {
		return translate(err, "BOM for job %s", bom.JobNumber)
	}
	return nil
}

// Save writes the header and replaces the item list, provided the stored
// version still equals bom.Version. On success bom.Version is advanced.
func (r *BomRepository) Save(ctx context.Context, bom *models.Bom) error {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()

	res := db.Model(&models.Bom{}).
		Where("id = ? AND version = ?", bom.ID, bom.Version).
		Updates(map[string]interface{}{
			"job_name":             bom.JobName,
			"project_manager":      bom.ProjectManager,
			"primary_field_leader": bom.PrimaryFieldLeader,
			"work_category_id":     bom.WorkCategoryID,
			"type":                 bom.Type,
			"updated_by":           bom.UpdatedBy,
			"version":              bom.Version + 1,
			"updated_at":           now,
		})
	if res.Error != nil {
		return translate(res.Error, "BOM %s", bom.ID)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Bom{}).Where("id = ?", bom.ID).Count(&count).Error; err != nil {
			return translate(err, "BOM %s", bom.ID)
		}
		if count == 0 {
			return apperror.NotFound("BOM %s not found", bom.ID)
		}
		return errVersionConflict
	}

	if err := db.Where("bom_id = ?", bom.ID).Delete(&models.BomItem{}).Error; err != nil {
		return translate(err, "items of BOM %s", bom.ID)
	}
	for i := range bom.Items {
		bom.Items[i].BomID = bom.ID
		bom.Items[i].Position = i
	}
	if len(bom.Items) > 0 {
		if err := db.Create(&bom.Items).Error; err != nil {
			return translate(err, "items of BOM %s", bom.ID)
		}
	}

	bom.Version++
	bom.UpdatedAt = now
	return nil
}

func (r *BomRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("bom_id = ?", id).Delete(&models.BomItem{}).Error; err != nil {
		return translate(err, "items of BOM %s", id)
	}
	res := db.Delete(&models.Bom{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "BOM %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("BOM %s not found", id)
	}
	return nil
}
