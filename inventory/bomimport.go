package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parttrack/apperror"
	"parttrack/models"

	"gorm.io/datatypes"
)

// Column names of the row-per-item layout.
const (
	ColJobNumber          = "jobNumber"
	ColJobName            = "jobName"
	ColProjectManager     = "projectManager"
	ColPrimaryFieldLeader = "primaryFieldLeader"
	ColWorkCategoryID     = "workCategoryId"
	ColDescription        = "description"
	ColQuantity           = "quantity"
)

var headerAliases = map[string]string{
	"jobnumber":          ColJobNumber,
	"job#":               ColJobNumber,
	"jobno":              ColJobNumber,
	"jobname":            ColJobName,
	"projectmanager":     ColProjectManager,
	"pm":                 ColProjectManager,
	"primaryfieldleader": ColPrimaryFieldLeader,
	"fieldleader":        ColPrimaryFieldLeader,
	"workcategoryid":     ColWorkCategoryID,
	"workcategory":       ColWorkCategoryID,
	"category":           ColWorkCategoryID,
	"description":        ColDescription,
	"partnumber":         ColDescription,
	"quantity":           ColQuantity,
	"qty":                ColQuantity,
}

// CanonicalColumn maps a header cell to its column name, or "" when the
// header is not recognized. Case, spaces, underscores and dashes are ignored.
func CanonicalColumn(header string) string {
	h := MatchKey(header)
	h = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(h)
	return headerAliases[h]
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParsedBom is the result of reading an import file, shown to the user for
// review before anything is written.
type ParsedBom struct {
	Job         models.JobHeader `json:"job"`
	Type        models.BomType   `json:"type"`
	Items       []models.BomItem `json:"items"`
	SkippedRows []SkippedRow     `json:"skipped_rows"`
}

// ParseBom detects the layout of rows and parses it. A first row that is a
// job "key,value" pair starts the sectioned layout; anything else is read
// as the row-per-item layout, which reports missing header columns.
func ParseBom(rows [][]string, bomType models.BomType, now time.Time) (*ParsedBom, error) {
	first := firstNonBlank(rows, 0)
	if first < 0 {
		return nil, apperror.Validation("the file has no rows")
	}
	if isJobPair(rows[first]) {
		return ParseSectionedBom(rows, bomType, now)
	}
	return ParseBomRows(rows, bomType, now)
}

// isJobPair reports whether row is a sectioned-layout job line: a job key
// in the first cell, a value that is not itself a header in the second,
// and nothing after it.
func isJobPair(row []string) bool {
	if len(row) < 2 {
		return false
	}
	switch CanonicalColumn(row[0]) {
	case ColJobNumber, ColJobName, ColProjectManager, ColPrimaryFieldLeader, ColWorkCategoryID:
	default:
		return false
	}
	value := strings.TrimSpace(row[1])
	if value == "" || CanonicalColumn(value) != "" {
		return false
	}
	return isBlank(row[2:])
}

// ParseBomRows reads the row-per-item layout: one header row, then one item
// per row with the job columns repeated. Job identity comes from the first
// data row only.
func ParseBomRows(rows [][]string, bomType models.BomType, now time.Time) (*ParsedBom, error) {
	if !bomType.Valid() {
		return nil, apperror.Validation("BOM type must be %q or %q", models.BomTypeOrder, models.BomTypeDesign)
	}
	headerRow := firstNonBlank(rows, 0)
	if headerRow < 0 {
		return nil, apperror.Validation("the file has no rows")
	}
	cols := columnIndex(rows[headerRow])
	if err := requireColumns(cols, ColJobNumber, ColDescription, ColQuantity); err != nil {
		return nil, err
	}

	parsed := &ParsedBom{Type: bomType}
	b := newItemBuilder(bomType, now)
	jobSet := false

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		if !jobSet {
			parsed.Job = models.JobHeader{
				JobNumber:          cell(row, cols, ColJobNumber),
				JobName:            cell(row, cols, ColJobName),
				ProjectManager:     cell(row, cols, ColProjectManager),
				PrimaryFieldLeader: cell(row, cols, ColPrimaryFieldLeader),
				WorkCategoryID:     cell(row, cols, ColWorkCategoryID),
			}
			jobSet = true
		}
		if reason := b.add(cell(row, cols, ColDescription), cell(row, cols, ColQuantity)); reason != "" {
			parsed.SkippedRows = append(parsed.SkippedRows, SkippedRow{Row: i + 1, Reason: reason})
		}
	}

	return finish(parsed, b)
}

// ParseSectionedBom reads the older two-section layout: "key,value" job
// rows, at least one blank row, then an item header row and item rows.
func ParseSectionedBom(rows [][]string, bomType models.BomType, now time.Time) (*ParsedBom, error) {
	if !bomType.Valid() {
		return nil, apperror.Validation("BOM type must be %q or %q", models.BomTypeOrder, models.BomTypeDesign)
	}
	start := firstNonBlank(rows, 0)
	if start < 0 {
		return nil, apperror.Validation("the file has no rows")
	}

	parsed := &ParsedBom{Type: bomType}
	i := start
	for ; i < len(rows) && !isBlank(rows[i]); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		value := strings.TrimSpace(row[1])
		switch CanonicalColumn(row[0]) {
		case ColJobNumber:
			parsed.Job.JobNumber = value
		case ColJobName:
			parsed.Job.JobName = value
		case ColProjectManager:
			parsed.Job.ProjectManager = value
		case ColPrimaryFieldLeader:
			parsed.Job.PrimaryFieldLeader = value
		case ColWorkCategoryID:
			parsed.Job.WorkCategoryID = value
		}
	}

	headerRow := firstNonBlank(rows, i)
	if headerRow < 0 {
		return nil, apperror.Validation("the file has no item section")
	}
	cols := columnIndex(rows[headerRow])
	if err := requireColumns(cols, ColDescription, ColQuantity); err != nil {
		return nil, err
	}

	b := newItemBuilder(bomType, now)
	for j := headerRow + 1; j < len(rows); j++ {
		row := rows[j]
		if isBlank(row) {
			continue
		}
		if reason := b.add(cell(row, cols, ColDescription), cell(row, cols, ColQuantity)); reason != "" {
			parsed.SkippedRows = append(parsed.SkippedRows, SkippedRow{Row: j + 1, Reason: reason})
		}
	}

	return finish(parsed, b)
}

func finish(parsed *ParsedBom, b *itemBuilder) (*ParsedBom, error) {
	if parsed.Job.JobNumber == "" {
		return nil, apperror.ValidationFields("job number is missing", map[string]string{ColJobNumber: "required"})
	}
	if len(b.items) == 0 {
		return nil, apperror.Validation("no valid item rows: every row needs a description and a quantity of at least 1")
	}
	parsed.Items = b.items
	return parsed, nil
}

// ParseQuantity accepts a positive whole number. Spreadsheet numerics such
// as "12.0" are accepted; "12.5", "0" and "-3" are not.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		if strings.Trim(s[dot+1:], "0") != "" {
			return 0, fmt.Errorf("quantity %q is not a whole number", raw)
		}
		s = s[:dot]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("quantity must be at least 1, got %d", n)
	}
	return n, nil
}

type itemBuilder struct {
	bomType models.BomType
	now     time.Time
	items   []models.BomItem
	byKey   map[string]int
}

func newItemBuilder(bomType models.BomType, now time.Time) *itemBuilder {
	return &itemBuilder{bomType: bomType, now: now, byKey: make(map[string]int)}
}

// add appends one item row, merging rows whose descriptions share a match
// key. It returns the reason a row was skipped, or "".
func (b *itemBuilder) add(description, quantity string) string {
	description = strings.TrimSpace(description)
	key := MatchKey(description)
	if key == "" {
		return "description is empty"
	}
	qty, err := ParseQuantity(quantity)
	if err != nil {
		return err.Error()
	}

	if idx, ok := b.byKey[key]; ok {
		b.setQuantity(&b.items[idx], b.quantity(b.items[idx])+qty)
		return ""
	}

	item := models.BomItem{
		Position:       len(b.items),
		Description:    description,
		ShelfLocations: datatypes.JSONSlice[string]{},
		LastUpdated:    b.now,
	}
	b.setQuantity(&item, qty)
	b.byKey[key] = len(b.items)
	b.items = append(b.items, item)
	return ""
}

func (b *itemBuilder) quantity(item models.BomItem) int {
	if b.bomType == models.BomTypeDesign {
		return item.DesignBomQuantity
	}
	return item.OrderBomQuantity
}

func (b *itemBuilder) setQuantity(item *models.BomItem, qty int) {
	if b.bomType == models.BomTypeDesign {
		item.DesignBomQuantity = qty
		return
	}
	item.OrderBomQuantity = qty
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		name := CanonicalColumn(h)
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func requireColumns(cols map[string]int, required ...string) error {
	missing := make(map[string]string)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing[name] = "column is missing"
		}
	}
	if len(missing) > 0 {
		return apperror.ValidationFields("required columns are missing", missing)
	}
	return nil
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstNonBlank(rows [][]string, from int) int {
	for i := from; i < len(rows); i++ {
		if !isBlank(rows[i]) {
			return i
		}
	}
	return -1
}
