package models

import (
	"time"

	"parttrack/controllers/idgen"
	"parttrack/types"

	"gorm.io/gorm"
)

// assignID gives a new row a snowflake ID unless the caller already set one.
func assignID(id *types.SnowflakeID) {
	if *id == 0 {
		*id = types.SnowflakeID(idgen.GenerateID())
	}
}

// Job is the job reference a BOM import upserts.
type Job struct {
	ID                 types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	JobNumber          string            `json:"job_number" gorm:"uniqueIndex;size:64;not null"`
	JobName            string            `json:"job_name"`
	ProjectManager     string            `json:"project_manager"`
	PrimaryFieldLeader string            `json:"primary_field_leader"`
	WorkCategoryID     string            `json:"work_category_id"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&j.ID)
	return
}

// JobHeader is the job identity carried by BOMs and import files.
type JobHeader struct {
	JobNumber          string `json:"job_number" validate:"required"`
	JobName            string `json:"job_name"`
	ProjectManager     string `json:"project_manager"`
	PrimaryFieldLeader string `json:"primary_field_leader"`
	WorkCategoryID     string `json:"work_category_id"`
}

// Merge copies the non-empty fields of h onto j.
func (j *Job) Merge(h JobHeader) {
	if h.JobName != "" {
		j.JobName = h.JobName
	}
	if h.ProjectManager != "" {
		j.ProjectManager = h.ProjectManager
	}
	if h.PrimaryFieldLeader != "" {
		j.PrimaryFieldLeader = h.PrimaryFieldLeader
	}
	if h.WorkCategoryID != "" {
		j.WorkCategoryID = h.WorkCategoryID
	}
}
