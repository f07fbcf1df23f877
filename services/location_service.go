package services

import (
	"context"
	"fmt"
	"strings"

	"parttrack/apperror"
	"parttrack/inventory"
	"parttrack/logger"
	"parttrack/models"
	"parttrack/repositories"
	"parttrack/types"
)

type LocationService struct {
	store *repositories.Store
	log   *logger.Logger
}

func NewLocationService(d Deps) *LocationService {
	d = d.withDefaults()
	return &LocationService{store: d.Store, log: d.Log}
}

func shelfOccupiedError(shelf string) error {
	return apperror.ValidationFields("shelf location not available", map[string]string{
		"shelf_location": fmt.Sprintf("shelf %s is occupied", shelf),
	})
}

func (s *LocationService) CreateLocation(ctx context.Context, name, by string) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFields("invalid request", map[string]string{"name": "is required"})
	}

	loc := &models.Location{Name: name, CreatedBy: by}
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		existing, err := tx.Locations.ExistingNames(ctx, []string{name})
		if err != nil {
			return err
		}
		if existing[name] {
			return apperror.Validation("location %s already exists", name)
		}
		return tx.Locations.Create(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("location created", "name", name, "created_by", by)
	return loc, nil
}

type LocationImportResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// ImportLocations creates locations from the "name" column of rows. Names
// that already exist or repeat are skipped; either all new names are
// stored or none.
func (s *LocationService) ImportLocations(ctx context.Context, rows [][]string, by string) (*LocationImportResult, error) {
	if len(rows) == 0 {
		return nil, apperror.Validation("the file has no rows")
	}
	col := -1
	for i, h := range rows[0] {
		if inventory.MatchKey(h) == "name" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, apperror.ValidationFields("required columns are missing", map[string]string{"name": "column is missing"})
	}

	var names []string
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[col])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, apperror.Validation("no location names found in the file")
	}

	result := &LocationImportResult{}
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		result = &LocationImportResult{Created: []string{}, Skipped: []string{}}
		existing, err := tx.Locations.ExistingNames(ctx, names)
		if err != nil {
			return err
		}
		var locs []models.Location
		for _, name := range names {
			if existing[name] {
				result.Skipped = append(result.Skipped, name)
				continue
			}
			locs = append(locs, models.Location{Name: name, CreatedBy: by})
			result.Created = append(result.Created, name)
		}
		return tx.Locations.CreateBatch(ctx, locs)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("locations imported", "created", len(result.Created), "skipped", len(result.Skipped), "imported_by", by)
	return result, nil
}

// ListLocations returns every location in section.bay.shelf order.
func (s *LocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	locs, err := s.store.Repos().Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	inventory.SortLocationsHierarchical(locs)
	return locs, nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id types.SnowflakeID, by string) error {
	var name string
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		loc, err := tx.Locations.FindByID(ctx, id)
		if err != nil {
			return err
		}
		name = loc.Name
		return tx.Locations.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("location deleted", "location_id", id, "name", name, "deleted_by", by)
	return nil
}

// EligibleShelves lists the shelves the form may offer for one container
// entry, given the shelves picked by the other entries and the entry's own.
func (s *LocationService) EligibleShelves(ctx context.Context, inFlight []string, current string) ([]models.Location, error) {
	repos := s.store.Repos()
	locations, err := repos.Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	boms, err := repos.Boms.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return inventory.EligibleShelves(locations, inventory.NewShelfIndex(boms), inFlight, current), nil
}

// ShelfOccupancy is what sits on one occupied shelf: the BOM items that
// list it with stock on hand and the containers shelved there.
type ShelfOccupancy struct {
	Holders    []inventory.Holder `json:"holders"`
	Containers []models.Container `json:"containers"`
}

// Occupancy lists who holds each occupied shelf.
func (s *LocationService) Occupancy(ctx context.Context) (map[string]ShelfOccupancy, error) {
	repos := s.store.Repos()
	boms, err := repos.Boms.List(ctx, "")
	if err != nil {
		return nil, err
	}
	index := inventory.NewShelfIndex(boms)
	out := make(map[string]ShelfOccupancy)
	for _, name := range index.OccupiedNames() {
		containers, err := repos.Containers.ShelvedIn(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = ShelfOccupancy{Holders: index.Holders(name), Containers: containers}
	}
	return out, nil
}
