package services

import (
	"context"
	"errors"
	"testing"

	"parttrack/apperror"
	"parttrack/models"
)

func TestCreateLocation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	if _, err := svc.Locations.CreateLocation(ctx, "  ", "admin"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("blank name: err = %v", err)
	}
	if _, err := svc.Locations.CreateLocation(ctx, "A.1.1", "admin"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Locations.CreateLocation(ctx, "A.1.1", "admin"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("duplicate: err = %v", err)
	}
}

func TestImportLocations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)
	createLocations(t, svc, "A.10")

	res, err := svc.Locations.ImportLocations(ctx, [][]string{{"Zone", "Name"}, {"x", "A.2"}, {"x", "A.10"}, {"x", " A.2 "}, {"x", ""}, {"y"}}, "admin")
	if err != nil {
		t.Fatalf("ImportLocations: %v", err)
	}
	if len(res.Created) != 1 || res.Created[0] != "A.2" || len(res.Skipped) != 1 || res.Skipped[0] != "A.10" {
		t.Errorf("result = %+v", res)
	}

	locs, err := svc.Locations.ListLocations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(locs) != 2 || locs[0].Name != "A.2" || locs[1].Name != "A.10" {
		t.Errorf("locations = %+v", locs)
	}

	for name, rows := range map[string][][]string{
		"empty":          nil,
		"no name column": {{"Shelf"}, {"A.3"}},
		"no names":       {{"name"}, {""}},
	} {
		if _, err := svc.Locations.ImportLocations(ctx, rows, "admin"); !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("%s: err = %v, want validation", name, err)
		}
	}
}

func TestEligibleShelvesAndOccupancy(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestServices(t)
	createLocations(t, svc, "A.1", "A.2", "A.3")
	createBom(t, store, "J-1", models.BomItem{Description: "Pole", OnHandQuantity: 3, ShelfLocations: []string{"A.1"}})
	shelved := createContainer(t, store, "J-1", models.ContainerItem{Description: "Pole", Quantity: 3})
	shelf := "A.1"
	if err := store.Repos().Containers.UpdateShelf(ctx, shelved.ID, &shelf); err != nil {
		t.Fatal(err)
	}
	createContainer(t, store, "J-1", models.ContainerItem{Description: "Pole", Quantity: 1})

	got, err := svc.Locations.EligibleShelves(ctx, []string{"A.2"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "A.3" {
		t.Errorf("eligible = %+v", got)
	}

	occ, err := svc.Locations.Occupancy(ctx)
	if err != nil {
		t.Fatal(err)
	}
	a1, ok := occ["A.1"]
	if len(occ) != 1 || !ok {
		t.Fatalf("occupancy = %+v", occ)
	}
	if len(a1.Holders) != 1 || a1.Holders[0].JobNumber != "J-1" {
		t.Errorf("holders = %+v", a1.Holders)
	}
	if len(a1.Containers) != 1 || a1.Containers[0].ID != shelved.ID {
		t.Errorf("containers = %+v", a1.Containers)
	}
}

func TestMoveContainer(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestServices(t)
	createLocations(t, svc, "A.1", "A.2")
	createBom(t, store, "J-1", models.BomItem{Description: "Pole", OnHandQuantity: 3, ShelfLocations: []string{"A.1"}})
	c := createContainer(t, store, "J-2", models.ContainerItem{Description: "Arm", Quantity: 1})

	if _, err := svc.Containers.MoveContainer(ctx, c.ID, "A.1", "Sam"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("occupied: err = %v", err)
	}
	if _, err := svc.Containers.MoveContainer(ctx, c.ID, "Q.9", "Sam"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown shelf: err = %v", err)
	}

	moved, err := svc.Containers.MoveContainer(ctx, c.ID, "A.2", "Sam")
	if err != nil {
		t.Fatal(err)
	}
	if moved.Shelf() != "A.2" {
		t.Errorf("shelf = %q", moved.Shelf())
	}

	moved, err = svc.Containers.MoveContainer(ctx, c.ID, "", "Sam")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Containers.GetContainer(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if moved.ShelfLocation != nil || got.ShelfLocation != nil {
		t.Errorf("container still shelved on %q", got.Shelf())
	}

	if err := svc.Containers.DeleteContainer(ctx, c.ID, "admin"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Containers.GetContainer(ctx, c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete: err = %v", err)
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	c, err := svc.Categories.CreateCategory(ctx, models.Category{Name: " Lighting "})
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Lighting" {
		t.Errorf("name = %q", c.Name)
	}
	if _, err := svc.Categories.CreateCategory(ctx, models.Category{Name: "Lighting"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("duplicate: err = %v", err)
	}
	if _, err := svc.Categories.CreateCategory(ctx, models.Category{}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("blank: err = %v", err)
	}

	if err := svc.Categories.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	list, err := svc.Categories.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("categories = %+v", list)
	}
}
