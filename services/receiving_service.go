package services

import (
	"context"
	"errors"
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
)

type ContainerInput struct {
	ContainerType  string           `json:"container_type" validate:"required"`
	WorkCategoryID string           `json:"work_category_id"`
	ShelfLocation  string           `json:"shelf_location"`
	Notes          string           `json:"notes"`
	ImageURL       string           `json:"image_url"`
	Items          []inventory.Line `json:"items" validate:"required,min=1,dive"`
}

type ReceiveRequest struct {
	JobNumber   string           `json:"job_number"`
	JobName     string           `json:"job_name"`
	ReceiptDate time.Time        `json:"receipt_date"`
	Containers  []ContainerInput `json:"containers" validate:"required,min=1,dive"`
	ReceivedBy  string           `json:"-"`
}

// ReceiveResult reports the created containers. Unmatched lists received
// descriptions that are not on the job's BOM.
type ReceiveResult struct {
	ContainerIDs []types.SnowflakeID    `json:"container_ids"`
	BomID        *types.SnowflakeID     `json:"bom_id,omitempty"`
	BomUpdated   bool                   `json:"bom_updated"`
	Changes      []inventory.ItemChange `json:"changes"`
	Unmatched    []string               `json:"unmatched"`
}

type ReceivingService struct {
	store *repositories.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewReceivingService(d Deps) *ReceivingService {
	d = d.withDefaults()
	return &ReceivingService{store: d.Store, log: d.Log, now: d.Now}
}

// ReceiveContainers logs a batch of containers and credits their contents
// to the job's BOM in one transaction. A job without a BOM is allowed: the
// containers are still created and BomUpdated is false.
func (s *ReceivingService) ReceiveContainers(ctx context.Context, req ReceiveRequest) (*ReceiveResult, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	now := s.now()
	if req.ReceiptDate.IsZero() {
		req.ReceiptDate = now
	}
	batch := make([]inventory.Line, 0)
	for _, c := range req.Containers {
		batch = append(batch, c.Items...)
	}
	tally := inventory.AggregateLines(batch)

	var result *ReceiveResult
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		result = &ReceiveResult{}

		if err := s.checkShelves(ctx, tx, req.Containers); err != nil {
			return err
		}

		var bom *models.Bom
		if req.JobNumber != "" {
			found, err := tx.Boms.FindByJobNumber(ctx, req.JobNumber)
			switch {
			case err == nil:
				bom = found
			case errors.Is(err, apperror.ErrNotFound):
			default:
				return err
			}
		}

		jobName := req.JobName
		if jobName == "" && bom != nil {
			jobName = bom.JobName
		}

		containers := make([]*models.Container, len(req.Containers))
		for i, in := range req.Containers {
			c := &models.Container{
				JobNumber:      req.JobNumber,
				JobName:        jobName,
				WorkCategoryID: in.WorkCategoryID,
				ContainerType:  strings.TrimSpace(in.ContainerType),
				ReceiptDate:    req.ReceiptDate,
				Notes:          in.Notes,
				ImageURL:       in.ImageURL,
				CreatedBy:      req.ReceivedBy,
			}
			if c.WorkCategoryID == "" && bom != nil {
				c.WorkCategoryID = bom.WorkCategoryID
			}
			if shelf := strings.TrimSpace(in.ShelfLocation); shelf != "" {
				c.ShelfLocation = &shelf
			}
			for _, l := range in.Items {
				c.Items = append(c.Items, models.ContainerItem{Description: strings.TrimSpace(l.Description), Quantity: l.Quantity})
			}
			if err := tx.Containers.Create(ctx, c); err != nil {
				return err
			}
			containers[i] = c
			result.ContainerIDs = append(result.ContainerIDs, c.ID)
		}

		if bom == nil {
			for _, key := range tally.Keys() {
				result.Unmatched = append(result.Unmatched, tally.Description(key))
			}
			return nil
		}

		// credit container by container so each shelf lands on the items it holds
		items := bom.Items
		var history []models.InventoryHistory
		for i, c := range containers {
			out := inventory.ApplyReceipt(items, inventory.AggregateLines(req.Containers[i].Items), c.Shelf(), now)
			items = out.Items
			for _, ch := range out.Changes {
				row := historyRow(bom, c.ID.String(), models.HistoryTypeIn, req.ReceivedBy, now)
				row.Description = ch.Description
				row.RequestedQty = ch.Requested
				row.AppliedQty = ch.Applied
				row.OnHandBefore = ch.OnHandBefore
				row.OnHandAfter = ch.OnHandAfter
				history = append(history, row)
				result.Changes = append(result.Changes, ch)
			}
		}
		result.Unmatched = unmatchedDescriptions(items, tally)

		bom.Items = items
		bom.UpdatedBy = req.ReceivedBy
		if err := tx.Boms.Save(ctx, bom); err != nil {
			return err
		}
		if err := tx.History.CreateBatch(ctx, history); err != nil {
			return err
		}

		id := bom.ID
		result.BomID = &id
		result.BomUpdated = true
		return nil
	})
	if err != nil {
		s.log.Error("receive containers failed", "job_number", req.JobNumber, "containers", len(req.Containers), "error", err)
		return nil, err
	}

	if req.JobNumber != "" && !result.BomUpdated {
		s.log.Warn("no BOM for job, containers received without BOM update", "job_number", req.JobNumber, "container_ids", result.ContainerIDs)
	}
	s.log.Info("containers received",
		"job_number", req.JobNumber,
		"container_ids", result.ContainerIDs,
		"bom_updated", result.BomUpdated,
		"quantity", tally.Total(),
		"unmatched", len(result.Unmatched),
	)
	return result, nil
}

func (s *ReceivingService) validate(req *ReceiveRequest) error {
	req.JobNumber = strings.TrimSpace(req.JobNumber)
	if err := validation.Struct(req); err != nil {
		return err
	}

	fields := make(map[string]string)
	seen := make(map[string]int)
	for i, c := range req.Containers {
		for j, l := range c.Items {
			if inventory.MatchKey(l.Description) == "" {
				fields[fmt.Sprintf("containers[%d].items[%d].description", i, j)] = "is required"
			}
		}
		shelf := strings.TrimSpace(c.ShelfLocation)
		if shelf == "" {
			continue
		}
		if first, dup := seen[shelf]; dup {
			fields[fmt.Sprintf("containers[%d].shelf_location", i)] = fmt.Sprintf("shelf %s is already used by containers[%d]", shelf, first)
			continue
		}
		seen[shelf] = i
	}
	if len(fields) > 0 {
		return apperror.ValidationFields("invalid request", fields)
	}
	return nil
}

// checkShelves refuses shelves that don't exist or that already hold stock.
func (s *ReceivingService) checkShelves(ctx context.Context, tx repositories.Repos, containers []ContainerInput) error {
	var shelves []string
	for _, c := range containers {
		if shelf := strings.TrimSpace(c.ShelfLocation); shelf != "" {
			shelves = append(shelves, shelf)
		}
	}
	if len(shelves) == 0 {
		return nil
	}

	existing, err := tx.Locations.LockNames(ctx, shelves)
	if err != nil {
		return err
	}
	for _, shelf := range shelves {
		if !existing[shelf] {
			return apperror.NotFound("shelf location %s not found", shelf)
		}
	}

	boms, err := tx.Boms.List(ctx, "")
	if err != nil {
		return err
	}
	index := inventory.NewShelfIndex(boms)
	fields := make(map[string]string)
	for i, c := range containers {
		shelf := strings.TrimSpace(c.ShelfLocation)
		if shelf != "" && index.Occupied(shelf) {
			holders := index.Holders(shelf)
			fields[fmt.Sprintf("containers[%d].shelf_location", i)] = fmt.Sprintf("shelf %s is occupied by job %s", shelf, holders[0].JobNumber)
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields("shelf location not available", fields)
	}
	return nil
}

// unmatchedDescriptions lists tally entries that match no item.
func unmatchedDescriptions(items []models.BomItem, tally inventory.Tally) []string {
	onBom := make(map[string]bool, len(items))
	for _, item := range items {
		onBom[inventory.MatchKey(item.Description)] = true
	}
	var out []string
	for _, key := range tally.Keys() {
		if !onBom[key] {
			out = append(out, tally.Description(key))
		}
	}
	return out
}
