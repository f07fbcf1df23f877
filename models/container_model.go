package models

import (
	"time"

	"parttrack/types"

	"gorm.io/gorm"
)

type Container struct {
	ID             types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	JobNumber      string            `json:"job_number" gorm:"index;size:64"`
	JobName        string            `json:"job_name"`
	WorkCategoryID string            `json:"work_category_id"`
	ContainerType  string            `json:"container_type"`
	ShelfLocation  *string           `json:"shelf_location"` // nil means not shelved
	ReceiptDate    time.Time         `json:"receipt_date"`
	Items          []ContainerItem   `json:"items" gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE"`
	Notes          string            `json:"notes"`
	ImageURL       string            `json:"image_url"`
	LastShippedAt  *time.Time        `json:"last_shipped_at"`
	CreatedBy      string            `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (c *Container) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&c.ID)
	return
}

// Shelf returns the shelf location name, or "" when not shelved.
func (c *Container) Shelf() string {
	if c.ShelfLocation == nil {
		return ""
	}
	return *c.ShelfLocation
}

type ContainerItem struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ContainerID types.SnowflakeID `json:"container_id" gorm:"index;not null"`
	Description string            `json:"description" gorm:"not null"`
	Quantity    int               `json:"quantity"`
}

func (i *ContainerItem) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&i.ID)
	return
}
