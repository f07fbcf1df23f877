package inventory

import (
	"strconv"
	"strings"

	"parttrack/models"
	"parttrack/types"

	"golang.org/x/exp/slices"
)

// Holder is a BOM item with stock on a shelf.
type Holder struct {
	BomID       types.SnowflakeID `json:"bom_id"`
	JobNumber   string            `json:"job_number"`
	Description string            `json:"description"`
	OnHand      int               `json:"on_hand"`
}

// ShelfIndex is shelf occupancy materialized from one snapshot of BOMs. A
// shelf is occupied when some BOM item lists it and has on-hand stock.
type ShelfIndex struct {
	holders map[string][]Holder
}

func NewShelfIndex(boms []models.Bom) *ShelfIndex {
	idx := &ShelfIndex{holders: make(map[string][]Holder)}
	for _, bom := range boms {
		for _, item := range bom.Items {
			if item.OnHandQuantity <= 0 {
				continue
			}
			for _, shelf := range item.ShelfLocations {
				shelf = strings.TrimSpace(shelf)
				if shelf == "" {
					continue
				}
				idx.holders[shelf] = append(idx.holders[shelf], Holder{
					BomID:       bom.ID,
					JobNumber:   bom.JobNumber,
					Description: item.Description,
					OnHand:      item.OnHandQuantity,
				})
			}
		}
	}
	return idx
}

func (x *ShelfIndex) Occupied(name string) bool {
	return len(x.holders[strings.TrimSpace(name)]) > 0
}

func (x *ShelfIndex) Holders(name string) []Holder {
	return slices.Clone(x.holders[strings.TrimSpace(name)])
}

// OccupiedNames lists every occupied shelf, sorted.
func (x *ShelfIndex) OccupiedNames() []string {
	names := make([]string, 0, len(x.holders))
	for name := range x.holders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EligibleShelves returns the locations that are neither occupied nor
// reserved by another entry of the same submission, plus current so an
// existing choice stays selectable. The result is sorted by name.
func EligibleShelves(locations []models.Location, index *ShelfIndex, inFlight []string, current string) []models.Location {
	current = strings.TrimSpace(current)
	reserved := make(map[string]bool, len(inFlight))
	for _, s := range inFlight {
		if s = strings.TrimSpace(s); s != "" {
			reserved[s] = true
		}
	}

	out := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		name := strings.TrimSpace(loc.Name)
		if name == current && current != "" {
			out = append(out, loc)
			continue
		}
		if index.Occupied(name) || reserved[name] {
			continue
		}
		out = append(out, loc)
	}

	slices.SortFunc(out, func(a, b models.Location) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// EligibleForEntry is EligibleShelves for entry i of a multi-container
// form, where selections holds every entry's current shelf ("" for none).
func EligibleForEntry(locations []models.Location, index *ShelfIndex, selections []string, i int) []models.Location {
	var current string
	others := make([]string, 0, len(selections))
	for j, s := range selections {
		if j == i {
			current = s
			continue
		}
		others = append(others, s)
	}
	return EligibleShelves(locations, index, others, current)
}

// SortLocationsHierarchical orders section.bay.shelf names segment by
// segment, comparing numeric segments as numbers so "A.2" sorts before "A.10".
func SortLocationsHierarchical(locations []models.Location) {
	slices.SortFunc(locations, func(a, b models.Location) int {
		return compareLocationNames(a.Name, b.Name)
	})
}

func compareLocationNames(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return strings.Compare(a, b)
}

func compareSegment(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		// "01" and "1": fall through to text order
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
