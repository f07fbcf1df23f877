package models

import (
	"time"

	"parttrack/types"

	"gorm.io/gorm"
)

// Location is a shelf slot named section.bay.shelf, e.g. "A.01.B".
// Occupancy is derived from BOM items, never stored here.
type Location struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string            `json:"name" gorm:"uniqueIndex;size:64;not null"`
	CreatedBy string            `json:"created_by"`
	CreatedAt time.Time         `json:"created_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&l.ID)
	return
}
