package models

import (
	"time"

	"parttrack/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BomType string

const (
	BomTypeOrder  BomType = "order"
	BomTypeDesign BomType = "design"
)

func (t BomType) Valid() bool {
	return t == BomTypeOrder || t == BomTypeDesign
}

// Bom is one job's bill of materials. Version is bumped on every save and a
// save against a stale version fails.
type Bom struct {
	ID                 types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	JobNumber          string            `json:"job_number" gorm:"index;size:64;not null"`
	JobName            string            `json:"job_name"`
	ProjectManager     string            `json:"project_manager"`
	PrimaryFieldLeader string            `json:"primary_field_leader"`
	WorkCategoryID     string            `json:"work_category_id"`
	Type               BomType           `json:"type" gorm:"size:16"`
	Version            int               `json:"version" gorm:"not null;default:1"`
	Items              []BomItem         `json:"items" gorm:"foreignKey:BomID;constraint:OnDelete:CASCADE"`
	CreatedBy          string            `json:"created_by"`
	UpdatedBy          string            `json:"updated_by"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (b *Bom) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&b.ID)
	if b.Version == 0 {
		b.Version = 1
	}
	return
}

func (b *Bom) Header() JobHeader {
	return JobHeader{
		JobNumber:          b.JobNumber,
		JobName:            b.JobName,
		ProjectManager:     b.ProjectManager,
		PrimaryFieldLeader: b.PrimaryFieldLeader,
		WorkCategoryID:     b.WorkCategoryID,
	}
}

type BomItem struct {
	ID                types.SnowflakeID           `json:"id" gorm:"primaryKey;autoIncrement:false"`
	BomID             types.SnowflakeID           `json:"bom_id" gorm:"index;not null"`
	Position          int                         `json:"position"`
	Description       string                      `json:"description" gorm:"not null"`
	OrderBomQuantity  int                         `json:"order_bom_quantity"`
	DesignBomQuantity int                         `json:"design_bom_quantity"`
	OnHandQuantity    int                         `json:"on_hand_quantity"`
	ShippedQuantity   int                         `json:"shipped_quantity"`
	ShelfLocations    datatypes.JSONSlice[string] `json:"shelf_locations"`
	LastUpdated       time.Time                   `json:"last_updated"`
}

func (i *BomItem) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&i.ID)
	if i.ShelfLocations == nil {
		i.ShelfLocations = datatypes.JSONSlice[string]{}
	}
	return
}

// HasShelf reports whether name is one of the item's shelf locations.
func (i *BomItem) HasShelf(name string) bool {
	for _, s := range i.ShelfLocations {
		if s == name {
			return true
		}
	}
	return false
}
