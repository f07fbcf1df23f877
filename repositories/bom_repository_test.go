package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/testutil"

	"gorm.io/datatypes"
)

func TestFindByJobNumberPicksOldest(t *testing.T) {
	ctx := context.Background()
	repos := NewStore(testutil.NewDB(t), 1, nil).Repos()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := seedBom(t, repos, "J1", base.Add(time.Hour))
	older := seedBom(t, repos, "J1", base)
	seedBom(t, repos, "J2", base.Add(-time.Hour))

	got, err := repos.Boms.FindByJobNumber(ctx, "J1")
	if err != nil {
		t.Fatalf("FindByJobNumber: %v", err)
	}
	if got.ID != older.ID {
		t.Errorf("got BOM %s, want oldest %s (newer is %s)", got.ID, older.ID, newer.ID)
	}

	_, err = repos.Boms.FindByJobNumber(ctx, "NOPE")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing job err = %v, want not found", err)
	}
}

func TestSaveReplacesItemsAndBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repos := NewStore(testutil.NewDB(t), 1, nil).Repos()
	bom := seedBom(t, repos, "J1", time.Now(),
		models.BomItem{Description: "Conduit", OrderBomQuantity: 10},
		models.BomItem{Description: "Hard Hat", OrderBomQuantity: 2},
	)

	loaded, err := repos.Boms.FindByID(ctx, bom.ID)
	if err != nil {
		t.Fatal(err)
	}
	keptID := loaded.Items[0].ID
	loaded.Items = []models.BomItem{
		{ID: keptID, Description: "Conduit", OrderBomQuantity: 10, OnHandQuantity: 4, ShelfLocations: datatypes.JSONSlice[string]{"A.01.A"}},
		{Description: "Wire Nut", OrderBomQuantity: 50},
	}
	if err := repos.Boms.Save(ctx, loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loaded.Version != 2 {
		t.Errorf("Version = %d, want 2", loaded.Version)
	}

	got, err := repos.Boms.FindByID(ctx, bom.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 || got.Items[0].ID != keptID || got.Items[1].Description != "Wire Nut" {
		t.Fatalf("items = %+v", got.Items)
	}
	if shelves := []string(got.Items[0].ShelfLocations); len(shelves) != 1 || shelves[0] != "A.01.A" {
		t.Errorf("shelves = %v", shelves)
	}

	stale := *got
	stale.Version = 1
	if err := repos.Boms.Save(ctx, &stale); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("stale save err = %v, want conflict", err)
	}
}

func TestDeleteBom(t *testing.T) {
	ctx := context.Background()
	repos := NewStore(testutil.NewDB(t), 1, nil).Repos()
	bom := seedBom(t, repos, "J1", time.Now(), models.BomItem{Description: "Conduit"})

	if err := repos.Boms.Delete(ctx, bom.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.Boms.FindByID(ctx, bom.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("after delete err = %v", err)
	}
	if err := repos.Boms.Delete(ctx, bom.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestJobUpsertMerges(t *testing.T) {
	ctx := context.Background()
	repos := NewStore(testutil.NewDB(t), 1, nil).Repos()

	if _, err := repos.Jobs.Upsert(ctx, models.JobHeader{JobNumber: "J1", JobName: "Clinic", ProjectManager: "Dana"}); err != nil {
		t.Fatal(err)
	}
	job, err := repos.Jobs.Upsert(ctx, models.JobHeader{JobNumber: "J1", PrimaryFieldLeader: "Sam"})
	if err != nil {
		t.Fatal(err)
	}
	if job.JobName != "Clinic" || job.ProjectManager != "Dana" || job.PrimaryFieldLeader != "Sam" {
		t.Errorf("merged job = %+v", job)
	}

	jobs, err := repos.Jobs.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Errorf("jobs = %d, want 1", len(jobs))
	}
}

func TestLocationNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewStore(testutil.NewDB(t), 1, nil).Repos()

	if err := repos.Locations.Create(ctx, &models.Location{Name: "A.01.A"}); err != nil {
		t.Fatal(err)
	}
	err := repos.Locations.Create(ctx, &models.Location{Name: "A.01.A"})
	if err == nil {
		t.Fatalf("duplicate location accepted")
	}
	existing, err := repos.Locations.ExistingNames(ctx, []string{"A.01.A", "B.01.A"})
	if err != nil {
		t.Fatal(err)
	}
	if !existing["A.01.A"] || existing["B.01.A"] {
		t.Errorf("ExistingNames = %v", existing)
	}
}
