package repositories

import (
	"context"

	"parttrack/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) CreateBatch(ctx context.Context, rows []models.InventoryHistory) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return translate(err, "inventory history")
	}
	return nil
}

// ListByJob returns a job's movements, oldest first.
func (r *HistoryRepository) ListByJob(ctx context.Context, jobNumber string) ([]models.InventoryHistory, error) {
	var rows []models.InventoryHistory
	err := r.db.WithContext(ctx).Where("job_number = ?", jobNumber).Order("created_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "history of job %s", jobNumber)
	}
	return rows, nil
}

func (r *HistoryRepository) ListByRef(ctx context.Context, refNo string) ([]models.InventoryHistory, error) {
	var rows []models.InventoryHistory
	err := r.db.WithContext(ctx).Where("ref_no = ?", refNo).Order("created_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "history of %s", refNo)
	}
	return rows, nil
}
