package services

import (
	"context"
	"time"

	"parttrack/apperror"
	"parttrack/inventory"
	"parttrack/logger"
	"parttrack/models"
	"parttrack/notify"
	"parttrack/repositories"
	"parttrack/types"
)

type ShipResult struct {
	ContainerID   types.SnowflakeID      `json:"container_id"`
	JobNumber     string                 `json:"job_number"`
	BomID         types.SnowflakeID      `json:"bom_id"`
	Changes       []inventory.ItemChange `json:"changes"`
	OverShipments []inventory.ItemChange `json:"over_shipments"`
	Unmatched     []string               `json:"unmatched"`
	ShippedAt     time.Time              `json:"shipped_at"`
}

type ShippingService struct {
	store    *repositories.Store
	log      *logger.Logger
	notifier notify.Notifier
	now      func() time.Time
}

func NewShippingService(d Deps) *ShippingService {
	d = d.withDefaults()
	return &ShippingService{store: d.Store, log: d.Log, notifier: d.Notifier, now: d.Now}
}

// ShipContainer deducts a container's contents from its job's BOM. On-hand
// is clamped at zero and shipped grows by the full quantity. Shipping the
// same container again deducts again.
func (s *ShippingService) ShipContainer(ctx context.Context, id types.SnowflakeID, shippedBy string) (*ShipResult, error) {
	log := s.log.With("container_id", id)

	var result *ShipResult
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		container, err := tx.Containers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if container.JobNumber == "" {
			return apperror.Validation("container %s has no job associated", id)
		}

		bom, err := tx.Boms.FindByJobNumber(ctx, container.JobNumber)
		if err != nil {
			return err
		}

		now := s.now()
		lines := make([]inventory.Line, len(container.Items))
		for i, item := range container.Items {
			lines[i] = inventory.Line{Description: item.Description, Quantity: item.Quantity}
		}
		out := inventory.ApplyShipment(bom.Items, inventory.AggregateLines(lines), now)

		bom.Items = out.Items
		bom.UpdatedBy = shippedBy
		if err := tx.Boms.Save(ctx, bom); err != nil {
			return err
		}
		if err := tx.Containers.MarkShipped(ctx, id, now); err != nil {
			return err
		}

		history := make([]models.InventoryHistory, 0, len(out.Changes))
		for _, ch := range out.Changes {
			row := historyRow(bom, id.String(), models.HistoryTypeOut, shippedBy, now)
			row.Description = ch.Description
			row.RequestedQty = ch.Requested
			row.AppliedQty = ch.Applied
			row.OnHandBefore = ch.OnHandBefore
			row.OnHandAfter = ch.OnHandAfter
			row.OverShipped = ch.OverShipped
			history = append(history, row)
		}
		if err := tx.History.CreateBatch(ctx, history); err != nil {
			return err
		}

		result = &ShipResult{
			ContainerID:   id,
			JobNumber:     container.JobNumber,
			BomID:         bom.ID,
			Changes:       out.Changes,
			OverShipments: out.OverShipments,
			Unmatched:     out.Unmatched,
			ShippedAt:     now,
		}
		return nil
	})
	if err != nil {
		log.Error("ship container failed", "error", err)
		return nil, err
	}

	log.Info("container shipped", "job_number", result.JobNumber, "bom_id", result.BomID, "lines", len(result.Changes))
	if len(result.OverShipments) > 0 {
		s.reportOverShipment(ctx, log, result, shippedBy)
	}
	return result, nil
}

// reportOverShipment runs after commit, so a failed mail only gets logged.
func (s *ShippingService) reportOverShipment(ctx context.Context, log *logger.Logger, result *ShipResult, shippedBy string) {
	report := notify.OverShipment{
		JobNumber:   result.JobNumber,
		ContainerID: result.ContainerID.String(),
		ShippedBy:   shippedBy,
	}
	for _, o := range result.OverShipments {
		report.Lines = append(report.Lines, notify.OverShipLine{Description: o.Description, Requested: o.Requested, Applied: o.Applied})
		log.Warn("over-shipment: on-hand clamped to zero",
			"job_number", result.JobNumber,
			"description", o.Description,
			"requested", o.Requested,
			"on_hand_before", o.OnHandBefore,
		)
	}
	if err := s.notifier.OverShipped(ctx, report); err != nil {
		log.Error("over-shipment notification failed", "job_number", result.JobNumber, "error", err)
	}
}
