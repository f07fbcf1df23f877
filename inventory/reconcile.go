package inventory

import (
	"fmt"
	"time"

	"parttrack/apperror"
	"parttrack/models"

	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

// ItemChange describes what happened to one BOM item.
type ItemChange struct {
	Index        int    `json:"-"`
	Description  string `json:"description"`
	Requested    int    `json:"requested"`
	Applied      int    `json:"applied"`
	OnHandBefore int    `json:"on_hand_before"`
	OnHandAfter  int    `json:"on_hand_after"`
	OverShipped  bool   `json:"over_shipped"`
}

type ReceiptOutcome struct {
	Items     []models.BomItem
	Changes   []ItemChange
	Unmatched []string
}

type ShipmentOutcome struct {
	Items         []models.BomItem
	Changes       []ItemChange
	OverShipments []ItemChange
	Unmatched     []string
}

// cloneItems copies items deep enough that the outcome never aliases the
// caller's shelf slices.
func cloneItems(items []models.BomItem) []models.BomItem {
	out := slices.Clone(items)
	for i := range out {
		out[i].ShelfLocations = datatypes.JSONSlice[string](slices.Clone([]string(items[i].ShelfLocations)))
	}
	return out
}

// ApplyReceipt credits received quantities to the matching BOM items:
// on-hand grows by the tally quantity and, when shelf is set, the shelf is
// added to the item's locations. Items with no matching line are left as
// they were. The input slice is not modified.
func ApplyReceipt(items []models.BomItem, tally Tally, shelf string, now time.Time) ReceiptOutcome {
	out := ReceiptOutcome{Items: cloneItems(items)}
	matched := make(map[string]bool, tally.Len())

	for i := range out.Items {
		item := &out.Items[i]
		key := MatchKey(item.Description)
		qty, ok := tally.quantities[key]
		if !ok {
			continue
		}
		matched[key] = true

		before := item.OnHandQuantity
		item.OnHandQuantity += qty
		item.LastUpdated = now
		if shelf != "" && !slices.Contains([]string(item.ShelfLocations), shelf) {
			item.ShelfLocations = append(item.ShelfLocations, shelf)
		}
		out.Changes = append(out.Changes, ItemChange{
			Index:        i,
			Description:  item.Description,
			Requested:    qty,
			Applied:      qty,
			OnHandBefore: before,
			OnHandAfter:  item.OnHandQuantity,
		})
	}

	for _, key := range tally.keys {
		if !matched[key] {
			out.Unmatched = append(out.Unmatched, tally.Description(key))
		}
	}
	return out
}

// ApplyShipment deducts shipped quantities from the matching BOM items.
// On-hand is clamped at zero while shipped grows by the full quantity, so an
// over-shipment is reported in OverShipments with the deduction actually
// applied. The input slice is not modified.
func ApplyShipment(items []models.BomItem, tally Tally, now time.Time) ShipmentOutcome {
	out := ShipmentOutcome{Items: cloneItems(items)}
	matched := make(map[string]bool, tally.Len())

	for i := range out.Items {
		item := &out.Items[i]
		key := MatchKey(item.Description)
		qty, ok := tally.quantities[key]
		if !ok {
			continue
		}
		matched[key] = true

		before := item.OnHandQuantity
		item.OnHandQuantity = before - qty
		if item.OnHandQuantity < 0 {
			item.OnHandQuantity = 0
		}
		item.ShippedQuantity += qty
		item.LastUpdated = now

		change := ItemChange{
			Index:        i,
			Description:  item.Description,
			Requested:    qty,
			Applied:      before - item.OnHandQuantity,
			OnHandBefore: before,
			OnHandAfter:  item.OnHandQuantity,
			OverShipped:  qty > before,
		}
		out.Changes = append(out.Changes, change)
		if change.OverShipped {
			out.OverShipments = append(out.OverShipments, change)
		}
	}

	for _, key := range tally.keys {
		if !matched[key] {
			out.Unmatched = append(out.Unmatched, tally.Description(key))
		}
	}
	return out
}

// ValidateBomItems checks the item-list invariants: a description on every
// item, no negative quantities, and no two items sharing a match key.
func ValidateBomItems(items []models.BomItem) error {
	fields := make(map[string]string)
	seen := make(map[string]int, len(items))

	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		key := MatchKey(item.Description)
		switch {
		case key == "":
			fields[field] = "description is required"
		case item.OrderBomQuantity < 0 || item.DesignBomQuantity < 0:
			fields[field] = "BOM quantities must not be negative"
		case item.OnHandQuantity < 0:
			fields[field] = "on-hand quantity must not be negative"
		case item.ShippedQuantity < 0:
			fields[field] = "shipped quantity must not be negative"
		}
		if key == "" {
			continue
		}
		if first, dup := seen[key]; dup {
			fields[field] = fmt.Sprintf("duplicate of items[%d] %q", first, items[first].Description)
			continue
		}
		seen[key] = i
	}

	if len(fields) > 0 {
		return apperror.ValidationFields("invalid BOM items", fields)
	}
	return nil
}
