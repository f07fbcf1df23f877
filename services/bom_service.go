package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parttrack/apperror"
	"parttrack/inventory"
	"parttrack/logger"
	"parttrack/models"
	"parttrack/repositories"
	"parttrack/types"
	"parttrack/validation"

	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

// ImportRequest carries parsed file rows. Without Confirmed only the
// preview is returned.
type ImportRequest struct {
	Rows       [][]string     `json:"rows" validate:"required,min=1"`
	Type       models.BomType `json:"type" validate:"oneof=order design"`
	Confirmed  bool           `json:"confirmed"`
	ImportedBy string         `json:"-"`
}

type ImportResult struct {
	Preview   *inventory.ParsedBom `json:"preview"`
	Committed bool                 `json:"committed"`
	BomID     *types.SnowflakeID   `json:"bom_id,omitempty"`
}

// BomItemInput is one line of the BOM edit form. Nil counters and shelves
// keep the stored values of the item with the same description.
type BomItemInput struct {
	Description       string   `json:"description" validate:"required"`
	OrderBomQuantity  int      `json:"order_bom_quantity" validate:"gte=0"`
	DesignBomQuantity int      `json:"design_bom_quantity" validate:"gte=0"`
	OnHandQuantity    *int     `json:"on_hand_quantity" validate:"omitempty,gte=0"`
	ShippedQuantity   *int     `json:"shipped_quantity" validate:"omitempty,gte=0"`
	ShelfLocations    []string `json:"shelf_locations"`
}

// UpdateBomRequest is the BOM edit form. Version is the version the form
// was loaded from.
type UpdateBomRequest struct {
	Version            int            `json:"version" validate:"required"`
	JobName            string         `json:"job_name"`
	ProjectManager     string         `json:"project_manager"`
	PrimaryFieldLeader string         `json:"primary_field_leader"`
	WorkCategoryID     string         `json:"work_category_id"`
	Type               models.BomType `json:"type" validate:"omitempty,oneof=order design"`
	Items              []BomItemInput `json:"items" validate:"dive"`
	UpdatedBy          string         `json:"-"`
}

type BomService struct {
	store *repositories.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewBomService(d Deps) *BomService {
	d = d.withDefaults()
	return &BomService{store: d.Store, log: d.Log, now: d.Now}
}

// ImportBom parses rows into a BOM. Without confirmation it only returns the
// preview for review; with confirmation it upserts the job and creates the
// BOM in one transaction. Nothing is written when parsing fails.
func (s *BomService) ImportBom(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	parsed, err := inventory.ParseBom(req.Rows, req.Type, s.now())
	if err != nil {
		return nil, err
	}
	result := &ImportResult{Preview: parsed}
	if !req.Confirmed {
		return result, nil
	}

	bom, err := s.CommitImport(ctx, parsed, req.ImportedBy)
	if err != nil {
		return nil, err
	}
	result.Committed = true
	result.BomID = &bom.ID
	return result, nil
}

// CommitImport stores a reviewed import, possibly edited by the user after
// the preview. Only descriptions and the BOM quantities of the items are
// taken; stock counters start at zero.
func (s *BomService) CommitImport(ctx context.Context, parsed *inventory.ParsedBom, by string) (*models.Bom, error) {
	parsed.Job.JobNumber = strings.TrimSpace(parsed.Job.JobNumber)
	if parsed.Job.JobNumber == "" {
		return nil, apperror.ValidationFields("job number is missing", map[string]string{"job_number": "is required"})
	}
	if !parsed.Type.Valid() {
		return nil, apperror.Validation("BOM type must be %q or %q", models.BomTypeOrder, models.BomTypeDesign)
	}
	if len(parsed.Items) == 0 {
		return nil, apperror.Validation("a BOM needs at least one item")
	}
	if err := inventory.ValidateBomItems(parsed.Items); err != nil {
		return nil, err
	}
	if err := checkImportQuantities(parsed); err != nil {
		return nil, err
	}

	var bom *models.Bom
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		if _, err := tx.Jobs.Upsert(ctx, parsed.Job); err != nil {
			return err
		}

		now := s.now()
		bom = &models.Bom{
			JobNumber:          parsed.Job.JobNumber,
			JobName:            parsed.Job.JobName,
			ProjectManager:     parsed.Job.ProjectManager,
			PrimaryFieldLeader: parsed.Job.PrimaryFieldLeader,
			WorkCategoryID:     parsed.Job.WorkCategoryID,
			Type:               parsed.Type,
			CreatedBy:          by,
			UpdatedBy:          by,
		}
		for i, item := range parsed.Items {
			bom.Items = append(bom.Items, models.BomItem{
				Position:          i,
				Description:       strings.TrimSpace(item.Description),
				OrderBomQuantity:  item.OrderBomQuantity,
				DesignBomQuantity: item.DesignBomQuantity,
				ShelfLocations:    datatypes.JSONSlice[string]{},
				LastUpdated:       now,
			})
		}
		return tx.Boms.Create(ctx, bom)
	})
	if err != nil {
		s.log.Error("BOM import failed", "job_number", parsed.Job.JobNumber, "error", err)
		return nil, err
	}

	s.log.Info("BOM imported", "job_number", bom.JobNumber, "bom_id", bom.ID, "type", bom.Type, "items", len(bom.Items), "skipped_rows", len(parsed.SkippedRows))
	return bom, nil
}

// checkImportQuantities holds a reviewed import to the same rule parsing
// applies: every item needs a quantity of at least 1 for the BOM's type.
func checkImportQuantities(parsed *inventory.ParsedBom) error {
	fields := make(map[string]string)
	for i, item := range parsed.Items {
		qty := item.OrderBomQuantity
		if parsed.Type == models.BomTypeDesign {
			qty = item.DesignBomQuantity
		}
		if qty < 1 {
			fields[fmt.Sprintf("items[%d]", i)] = fmt.Sprintf("%s BOM quantity must be at least 1", parsed.Type)
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields("invalid BOM items", fields)
	}
	return nil
}

func (s *BomService) GetBom(ctx context.Context, id types.SnowflakeID) (*models.Bom, error) {
	return s.store.Repos().Boms.FindByID(ctx, id)
}

func (s *BomService) ListBoms(ctx context.Context, jobNumber string) ([]models.Bom, error) {
	return s.store.Repos().Boms.List(ctx, strings.TrimSpace(jobNumber))
}

// UpdateBom applies the edit form. Items are matched to stored ones by
// description so on-hand, shipped and shelves survive unless the form sets
// them. A form loaded from an older version is refused with a conflict.
func (s *BomService) UpdateBom(ctx context.Context, id types.SnowflakeID, req UpdateBomRequest) (*models.Bom, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var bom *models.Bom
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		current, err := tx.Boms.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Version != req.Version {
			return apperror.Conflict("the BOM was changed since it was loaded, reload and try again", nil)
		}

		items := mergeEditedItems(current.Items, req.Items, s.now())
		if err := inventory.ValidateBomItems(items); err != nil {
			return err
		}

		if req.JobName != "" {
			current.JobName = req.JobName
		}
		if req.ProjectManager != "" {
			current.ProjectManager = req.ProjectManager
		}
		if req.PrimaryFieldLeader != "" {
			current.PrimaryFieldLeader = req.PrimaryFieldLeader
		}
		if req.WorkCategoryID != "" {
			current.WorkCategoryID = req.WorkCategoryID
		}
		if req.Type != "" {
			current.Type = req.Type
		}
		current.Items = items
		current.UpdatedBy = req.UpdatedBy
		if err := tx.Boms.Save(ctx, current); err != nil {
			return err
		}
		if _, err := tx.Jobs.Upsert(ctx, current.Header()); err != nil {
			return err
		}
		bom = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("BOM updated", "bom_id", bom.ID, "job_number", bom.JobNumber, "version", bom.Version, "items", len(bom.Items))
	return bom, nil
}

func mergeEditedItems(stored []models.BomItem, edited []BomItemInput, now time.Time) []models.BomItem {
	byKey := make(map[string]models.BomItem, len(stored))
	for _, item := range stored {
		byKey[inventory.MatchKey(item.Description)] = item
	}

	out := make([]models.BomItem, 0, len(edited))
	for i, in := range edited {
		item := models.BomItem{ShelfLocations: datatypes.JSONSlice[string]{}}
		if prev, ok := byKey[inventory.MatchKey(in.Description)]; ok {
			item = prev
			item.ShelfLocations = datatypes.JSONSlice[string](slices.Clone([]string(prev.ShelfLocations)))
		}
		changed := item.ID == 0 ||
			item.OrderBomQuantity != in.OrderBomQuantity ||
			item.DesignBomQuantity != in.DesignBomQuantity

		item.Position = i
		item.Description = strings.TrimSpace(in.Description)
		item.OrderBomQuantity = in.OrderBomQuantity
		item.DesignBomQuantity = in.DesignBomQuantity
		if in.OnHandQuantity != nil && *in.OnHandQuantity != item.OnHandQuantity {
			item.OnHandQuantity = *in.OnHandQuantity
			changed = true
		}
		if in.ShippedQuantity != nil && *in.ShippedQuantity != item.ShippedQuantity {
			item.ShippedQuantity = *in.ShippedQuantity
			changed = true
		}
		if in.ShelfLocations != nil {
			item.ShelfLocations = datatypes.JSONSlice[string](cleanShelves(in.ShelfLocations))
		}
		if changed {
			item.LastUpdated = now
		}
		out = append(out, item)
	}
	return out
}

func cleanShelves(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func (s *BomService) DeleteBom(ctx context.Context, id types.SnowflakeID, by string) error {
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		return tx.Boms.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("BOM deleted", "bom_id", id, "deleted_by", by)
	return nil
}

// History returns the quantity movements recorded for a job.
func (s *BomService) History(ctx context.Context, jobNumber string) ([]models.InventoryHistory, error) {
	return s.store.Repos().History.ListByJob(ctx, strings.TrimSpace(jobNumber))
}
