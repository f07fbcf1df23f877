package models

import (
	"time"

	"parttrack/types"

	"gorm.io/gorm"
)

// Category groups BOMs and containers by kind of work.
type Category struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string            `json:"name" gorm:"uniqueIndex;size:64;not null" validate:"required,max=64"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&c.ID)
	return
}
