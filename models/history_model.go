package models

import (
	"time"

	"parttrack/types"

	"gorm.io/gorm"
)

const (
	HistoryTypeIn  = "IN"
	HistoryTypeOut = "OUT"
)

// InventoryHistory records one quantity movement on one BOM item.
// RefNo is the container ID that caused it.
type InventoryHistory struct {
	ID           types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RefNo        string            `json:"ref_no" gorm:"index;size:32"`
	JobNumber    string            `json:"job_number" gorm:"index;size:64"`
	BomID        types.SnowflakeID `json:"bom_id" gorm:"index"`
	Description  string            `json:"description"`
	Type         string            `json:"type" gorm:"size:8"`
	RequestedQty int               `json:"requested_qty"`
	AppliedQty   int               `json:"applied_qty"`
	OnHandBefore int               `json:"on_hand_before"`
	OnHandAfter  int               `json:"on_hand_after"`
	OverShipped  bool              `json:"over_shipped"`
	CreatedBy    string            `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (h *InventoryHistory) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&h.ID)
	return
}
