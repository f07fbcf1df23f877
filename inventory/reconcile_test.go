package inventory

import (
	"errors"
	"testing"
	"time"

	"parttrack/apperror"
	"parttrack/models"

	"gorm.io/datatypes"
)

var now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleItems() []models.BomItem {
	return []models.BomItem{
		{Description: `Conduit 3/4"`, OrderBomQuantity: 1000, OnHandQuantity: 100},
		{Description: "Junction Box", OrderBomQuantity: 100, OnHandQuantity: 40, ShippedQuantity: 5,
			ShelfLocations: datatypes.JSONSlice[string]{"A.01.A"}},
	}
}

func TestApplyReceiptCreditsMatchedItemsOnly(t *testing.T) {
	items := sampleItems()
	tally := AggregateLines([]Line{
		{Description: `conduit 3/4"`, Quantity: 30},
		{Description: `Conduit 3/4"`, Quantity: 20},
		{Description: "Mystery Bracket", Quantity: 7},
	})

	out := ApplyReceipt(items, tally, "B.02.C", now)

	if got := out.Items[0].OnHandQuantity; got != 150 {
		t.Errorf("conduit on-hand = %d, want 150", got)
	}
	if !out.Items[0].LastUpdated.Equal(now) {
		t.Errorf("conduit last_updated not stamped")
	}
	if got := []string(out.Items[0].ShelfLocations); len(got) != 1 || got[0] != "B.02.C" {
		t.Errorf("conduit shelves = %v", got)
	}
	if out.Items[1].OnHandQuantity != 40 || !out.Items[1].LastUpdated.IsZero() {
		t.Errorf("unmatched item changed: %+v", out.Items[1])
	}
	if len(out.Unmatched) != 1 || out.Unmatched[0] != "Mystery Bracket" {
		t.Errorf("Unmatched = %v", out.Unmatched)
	}
	if len(out.Changes) != 1 || out.Changes[0].OnHandBefore != 100 || out.Changes[0].OnHandAfter != 150 {
		t.Errorf("Changes = %+v", out.Changes)
	}
	if items[0].OnHandQuantity != 100 {
		t.Errorf("input slice was modified")
	}
}

func TestApplyReceiptDoesNotDuplicateShelf(t *testing.T) {
	items := sampleItems()
	out := ApplyReceipt(items, AggregateLines([]Line{{Description: "junction box", Quantity: 1}}), "A.01.A", now)
	if got := len(out.Items[1].ShelfLocations); got != 1 {
		t.Errorf("shelves = %v, want one entry", out.Items[1].ShelfLocations)
	}
	if &out.Items[1].ShelfLocations[0] == &items[1].ShelfLocations[0] {
		t.Errorf("outcome shares shelf storage with input")
	}
}

func TestApplyShipment(t *testing.T) {
	cases := []struct {
		name        string
		onHand      int
		shipped     int
		ship        int
		wantOnHand  int
		wantShipped int
		wantOver    bool
	}{
		{"exact", 100, 0, 100, 0, 100, false},
		{"partial", 150, 0, 50, 100, 50, false},
		{"over ship clamps on-hand only", 100, 0, 9999, 0, 9999, true},
		{"nothing on hand", 0, 10, 5, 0, 15, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []models.BomItem{{Description: `Conduit 3/4"`, OnHandQuantity: tc.onHand, ShippedQuantity: tc.shipped}}
			out := ApplyShipment(items, AggregateLines([]Line{{Description: `Conduit 3/4"`, Quantity: tc.ship}}), now)

			got := out.Items[0]
			if got.OnHandQuantity != tc.wantOnHand || got.ShippedQuantity != tc.wantShipped {
				t.Fatalf("on-hand/shipped = %d/%d, want %d/%d", got.OnHandQuantity, got.ShippedQuantity, tc.wantOnHand, tc.wantShipped)
			}
			if (len(out.OverShipments) == 1) != tc.wantOver {
				t.Fatalf("OverShipments = %+v, want over=%v", out.OverShipments, tc.wantOver)
			}
			if tc.wantOver {
				over := out.OverShipments[0]
				if over.Requested != tc.ship || over.Applied != tc.onHand {
					t.Errorf("over-shipment requested/applied = %d/%d, want %d/%d", over.Requested, over.Applied, tc.ship, tc.onHand)
				}
			}
		})
	}
}

func TestReceiveThenShipRoundTrip(t *testing.T) {
	items := []models.BomItem{{Description: `Conduit 3/4"`, OnHandQuantity: 100}}
	container := AggregateLines([]Line{{Description: `Conduit 3/4"`, Quantity: 50}})

	received := ApplyReceipt(items, container, "", now)
	if got := received.Items[0].OnHandQuantity; got != 150 {
		t.Fatalf("after receipt on-hand = %d, want 150", got)
	}

	shipped := ApplyShipment(received.Items, container, now)
	if got := shipped.Items[0]; got.OnHandQuantity != 100 || got.ShippedQuantity != 50 {
		t.Fatalf("after shipment on-hand/shipped = %d/%d, want 100/50", got.OnHandQuantity, got.ShippedQuantity)
	}
}

func TestShippingTwiceDoubleDeducts(t *testing.T) {
	items := []models.BomItem{{Description: "Hard Hat", OnHandQuantity: 50}}
	container := AggregateLines([]Line{{Description: "Hard Hat", Quantity: 10}})

	once := ApplyShipment(items, container, now)
	twice := ApplyShipment(once.Items, container, now)

	if got := twice.Items[0]; got.OnHandQuantity != 30 || got.ShippedQuantity != 20 {
		t.Fatalf("after two shipments on-hand/shipped = %d/%d, want 30/20", got.OnHandQuantity, got.ShippedQuantity)
	}
}

func TestValidateBomItems(t *testing.T) {
	cases := []struct {
		name  string
		items []models.BomItem
		ok    bool
	}{
		{"valid", sampleItems(), true},
		{"empty list", nil, true},
		{"blank description", []models.BomItem{{Description: "  "}}, false},
		{"negative on-hand", []models.BomItem{{Description: "Bolt", OnHandQuantity: -1}}, false},
		{"negative order qty", []models.BomItem{{Description: "Bolt", OrderBomQuantity: -2}}, false},
		{"duplicate after normalization", []models.BomItem{{Description: "Hard Hat"}, {Description: "hard  hat"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBomItems(tc.items)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}
