package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"parttrack/models"
	"parttrack/notify"
	"parttrack/repositories"
	"parttrack/testutil"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu      sync.Mutex
	reports []notify.OverShipment
	err     error
}

func (n *recordingNotifier) OverShipped(_ context.Context, r notify.OverShipment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, r)
	return n.err
}

func newTestServices(t *testing.T) (*Services, *repositories.Store, *recordingNotifier) {
	t.Helper()
	store := repositories.NewStore(testutil.NewDB(t), 3, nil)
	n := &recordingNotifier{}
	return New(Deps{Store: store, Notifier: n, Now: func() time.Time { return fixedNow }}), store, n
}

func createBom(t *testing.T, store *repositories.Store, jobNumber string, items ...models.BomItem) *models.Bom {
	t.Helper()
	bom := &models.Bom{JobNumber: jobNumber, JobName: jobNumber + " site", WorkCategoryID: "Lighting", Type: models.BomTypeOrder, Items: items}
	if err := store.Repos().Boms.Create(context.Background(), bom); err != nil {
		t.Fatalf("create bom: %v", err)
	}
	return bom
}

func createContainer(t *testing.T, store *repositories.Store, jobNumber string, items ...models.ContainerItem) *models.Container {
	t.Helper()
	c := &models.Container{JobNumber: jobNumber, ContainerType: "Pallet", ReceiptDate: fixedNow, Items: items}
	if err := store.Repos().Containers.Create(context.Background(), c); err != nil {
		t.Fatalf("create container: %v", err)
	}
	return c
}

func createLocations(t *testing.T, svc *Services, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := svc.Locations.CreateLocation(context.Background(), name, "admin"); err != nil {
			t.Fatalf("create location %s: %v", name, err)
		}
	}
}

func mustBom(t *testing.T, store *repositories.Store, bom *models.Bom) *models.Bom {
	t.Helper()
	got, err := store.Repos().Boms.FindByID(context.Background(), bom.ID)
	if err != nil {
		t.Fatalf("find bom: %v", err)
	}
	return got
}
