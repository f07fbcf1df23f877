package inventory

// Line is one {description, quantity} entry of a container.
type Line struct {
	Description string `json:"description" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

// Tally is a set of lines summed by match key.
type Tally struct {
	keys         []string
	quantities   map[string]int
	descriptions map[string]string
}

// AggregateLines sums quantities by MatchKey across all lines, so two
// containers that both carry "Conduit 3/4\"" add up. Lines with a blank
// description are ignored.
func AggregateLines(lines []Line) Tally {
	t := Tally{
		quantities:   make(map[string]int),
		descriptions: make(map[string]string),
	}
	for _, l := range lines {
		key := MatchKey(l.Description)
		if key == "" {
			continue
		}
		if _, ok := t.quantities[key]; !ok {
			t.keys = append(t.keys, key)
			t.descriptions[key] = l.Description
		}
		t.quantities[key] += l.Quantity
	}
	return t
}

// Keys returns the match keys in first-seen order.
func (t Tally) Keys() []string {
	return append([]string(nil), t.keys...)
}

func (t Tally) Len() int { return len(t.keys) }

func (t Tally) Quantity(key string) int { return t.quantities[key] }

// Description returns the first description seen for key, as entered.
func (t Tally) Description(key string) string { return t.descriptions[key] }

// Total is the sum of every quantity in the tally.
func (t Tally) Total() int {
	total := 0
	for _, q := range t.quantities {
		total += q
	}
	return total
}
