package inventory

import "testing"

func TestAggregateLinesSumsAcrossContainers(t *testing.T) {
	lines := []Line{
		{Description: `Conduit 3/4"`, Quantity: 30},
		{Description: "Junction Box", Quantity: 4},
		{Description: `conduit  3/4"`, Quantity: 20},
		{Description: "   ", Quantity: 99},
	}

	tally := AggregateLines(lines)

	if tally.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tally.Len())
	}
	key := MatchKey(`Conduit 3/4"`)
	if got := tally.Quantity(key); got != 50 {
		t.Errorf("conduit quantity = %d, want 50", got)
	}
	if got := tally.Description(key); got != `Conduit 3/4"` {
		t.Errorf("first description = %q", got)
	}
	if got := tally.Keys(); got[0] != key || got[1] != MatchKey("Junction Box") {
		t.Errorf("Keys = %v, want first-seen order", got)
	}
	if tally.Total() != 54 {
		t.Errorf("Total = %d, want 54", tally.Total())
	}
}
