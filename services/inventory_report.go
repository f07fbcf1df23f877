package services

import (
	"context"
	"strings"
	"time"

	"parttrack/models"
	"parttrack/types"

	"golang.org/x/exp/slices"
)

// InventoryFilter narrows the dashboard. Mine keeps only jobs where User is
// the project manager or the primary field leader.
type InventoryFilter struct {
	Search string
	Mine   bool
	User   string
}

// InventoryRow is one BOM item flattened with its job header.
type InventoryRow struct {
	BomID              types.SnowflakeID `json:"bom_id"`
	ItemID             types.SnowflakeID `json:"item_id"`
	JobNumber          string            `json:"job_number"`
	JobName            string            `json:"job_name"`
	ProjectManager     string            `json:"project_manager"`
	PrimaryFieldLeader string            `json:"primary_field_leader"`
	Type               models.BomType    `json:"type"`
	Description        string            `json:"description"`
	OrderBomQuantity   int               `json:"order_bom_quantity"`
	DesignBomQuantity  int               `json:"design_bom_quantity"`
	OnHandQuantity     int               `json:"on_hand_quantity"`
	ShippedQuantity    int               `json:"shipped_quantity"`
	ShelfLocations     []string          `json:"shelf_locations"`
	LastUpdated        time.Time         `json:"last_updated"`
}

// LocationRow is one BOM item on one shelf.
type LocationRow struct {
	Location string `json:"location"`
	InventoryRow
}

// Sortable columns of the location report.
const (
	SortLocation           = "location"
	SortJobNumber          = "job_number"
	SortJobName            = "job_name"
	SortProjectManager     = "project_manager"
	SortPrimaryFieldLeader = "primary_field_leader"
	SortDescription        = "description"
	SortOnHand             = "on_hand_quantity"
	SortLastUpdated        = "last_updated"
)

type LocationSort struct {
	Column string
	Desc   bool
}

// Inventory lists every BOM item across all jobs.
func (s *BomService) Inventory(ctx context.Context, f InventoryFilter) ([]InventoryRow, error) {
	boms, err := s.store.Repos().Boms.List(ctx, "")
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	rows := make([]InventoryRow, 0)
	for _, bom := range boms {
		if f.Mine && !isMine(bom, f.User) {
			continue
		}
		for _, item := range bom.Items {
			row := inventoryRow(bom, item)
			if search != "" && !row.matches(search, strings.ToLower(strings.Join(row.ShelfLocations, ", "))) {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// LocationReport lists one row per item per shelf it is stored on, sorted by
// the requested column, then by location and job number.
func (s *BomService) LocationReport(ctx context.Context, f InventoryFilter, sortBy LocationSort) ([]LocationRow, error) {
	boms, err := s.store.Repos().Boms.List(ctx, "")
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	rows := make([]LocationRow, 0)
	for _, bom := range boms {
		if f.Mine && !isMine(bom, f.User) {
			continue
		}
		for _, item := range bom.Items {
			for _, shelf := range item.ShelfLocations {
				row := LocationRow{Location: shelf, InventoryRow: inventoryRow(bom, item)}
				if search != "" && !row.matches(search, strings.ToLower(shelf)) {
					continue
				}
				rows = append(rows, row)
			}
		}
	}

	cmp := locationComparator(sortBy.Column)
	slices.SortStableFunc(rows, func(a, b LocationRow) int {
		c := cmp(a, b)
		if c == 0 {
			c = strings.Compare(a.Location, b.Location)
		}
		if c == 0 {
			c = strings.Compare(a.JobNumber, b.JobNumber)
		}
		if sortBy.Desc {
			return -c
		}
		return c
	})
	return rows, nil
}

func isMine(bom models.Bom, user string) bool {
	if user == "" {
		return false
	}
	return bom.ProjectManager == user || bom.PrimaryFieldLeader == user
}

func inventoryRow(bom models.Bom, item models.BomItem) InventoryRow {
	shelves := []string(item.ShelfLocations)
	if shelves == nil {
		shelves = []string{}
	}
	return InventoryRow{
		BomID:              bom.ID,
		ItemID:             item.ID,
		JobNumber:          bom.JobNumber,
		JobName:            bom.JobName,
		ProjectManager:     bom.ProjectManager,
		PrimaryFieldLeader: bom.PrimaryFieldLeader,
		Type:               bom.Type,
		Description:        item.Description,
		OrderBomQuantity:   item.OrderBomQuantity,
		DesignBomQuantity:  item.DesignBomQuantity,
		OnHandQuantity:     item.OnHandQuantity,
		ShippedQuantity:    item.ShippedQuantity,
		ShelfLocations:     shelves,
		LastUpdated:        item.LastUpdated,
	}
}

// matches reports whether the lower-cased search term appears in any text
// column or in shelves.
func (r InventoryRow) matches(search, shelves string) bool {
	for _, v := range []string{r.JobNumber, r.JobName, r.ProjectManager, r.PrimaryFieldLeader, r.Description, shelves} {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return strings.Contains(r.LastUpdated.Format("2006-01-02"), search)
}

func locationComparator(column string) func(a, b LocationRow) int {
	switch column {
	case SortJobNumber:
		return func(a, b LocationRow) int { return strings.Compare(a.JobNumber, b.JobNumber) }
	case SortJobName:
		return func(a, b LocationRow) int { return strings.Compare(a.JobName, b.JobName) }
	case SortProjectManager:
		return func(a, b LocationRow) int { return strings.Compare(a.ProjectManager, b.ProjectManager) }
	case SortPrimaryFieldLeader:
		return func(a, b LocationRow) int { return strings.Compare(a.PrimaryFieldLeader, b.PrimaryFieldLeader) }
	case SortDescription:
		return func(a, b LocationRow) int { return strings.Compare(a.Description, b.Description) }
	case SortOnHand:
		return func(a, b LocationRow) int { return a.OnHandQuantity - b.OnHandQuantity }
	case SortLastUpdated:
		return func(a, b LocationRow) int { return a.LastUpdated.Compare(b.LastUpdated) }
	default:
		return func(a, b LocationRow) int { return strings.Compare(a.Location, b.Location) }
	}
}
