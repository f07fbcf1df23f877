package repositories

import (
	"context"
	"errors"

	"parttrack/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) FindByNumber(ctx context.Context, jobNumber string) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "job_number = ?", jobNumber).Error; err != nil {
		return nil, translate(err, "job %s", jobNumber)
	}
	return &job, nil
}

// Upsert creates the job or merges h into the stored one. Empty fields of h
// never overwrite stored values.
func (r *JobRepository) Upsert(ctx context.Context, h models.JobHeader) (*models.Job, error) {
	db := r.db.WithContext(ctx)

	var job models.Job
	err := db.First(&job, "job_number = ?", h.JobNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		job = models.Job{JobNumber: h.JobNumber}
		job.Merge(h)
		if err := db.Create(&job).Error; err != nil {
			return nil, translate(err, "job %s", h.JobNumber)
		}
		return &job, nil
	}
	if err != nil {
		return nil, translate(err, "job %s", h.JobNumber)
	}

	job.Merge(h)
	if err := db.Save(&job).Error; err != nil {
		return nil, translate(err, "job %s", h.JobNumber)
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Order("job_number ASC").Find(&jobs).Error; err != nil {
		return nil, translate(err, "job list")
	}
	return jobs, nil
}
