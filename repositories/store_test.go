package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/testutil"
)

func seedBom(t *testing.T, repos Repos, jobNumber string, createdAt time.Time, items ...models.BomItem) *models.Bom {
	t.Helper()
	bom := &models.Bom{JobNumber: jobNumber, Type: models.BomTypeOrder, Items: items, CreatedAt: createdAt}
	if err := repos.Boms.Create(context.Background(), bom); err != nil {
		t.Fatalf("create bom: %v", err)
	}
	return bom
}

func TestRunTransactionRetriesVersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.NewDB(t), 5, nil)
	bom := seedBom(t, store.Repos(), "J1", time.Now(), models.BomItem{Description: "Hard Hat", OnHandQuantity: 10})

	attempts := 0
	err := store.RunTransaction(ctx, func(tx Repos) error {
		attempts++
		current, err := tx.Boms.FindByID(ctx, bom.ID)
		if err != nil {
			return err
		}
		if attempts == 1 {
			// a concurrent writer saves first
			if err := tx.Boms.db.Exec("UPDATE boms SET version = version + 1 WHERE id = ?", bom.ID).Error; err != nil {
				return err
			}
		}
		current.Items[0].OnHandQuantity += 5
		return tx.Boms.Save(ctx, current)
	})
	if err != nil {
		t.Fatalf("RunTransaction: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}

	got, err := store.Repos().Boms.FindByID(ctx, bom.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Items[0].OnHandQuantity != 15 {
		t.Errorf("on-hand = %d, want 15", got.Items[0].OnHandQuantity)
	}
}

func TestRunTransactionGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.NewDB(t), 3, nil)
	bom := seedBom(t, store.Repos(), "J1", time.Now(), models.BomItem{Description: "Hard Hat"})

	attempts := 0
	err := store.RunTransaction(ctx, func(tx Repos) error {
		attempts++
		current, err := tx.Boms.FindByID(ctx, bom.ID)
		if err != nil {
			return err
		}
		current.Version--
		return tx.Boms.Save(ctx, current)
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRunTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.NewDB(t), 5, nil)
	boom := errors.New("boom")

	attempts := 0
	err := store.RunTransaction(ctx, func(tx Repos) error {
		attempts++
		if err := tx.Containers.Create(ctx, &models.Container{ContainerType: "Pallet"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if attempts != 1 {
		t.Errorf("non-conflict error retried %d times", attempts)
	}

	containers, err := store.Repos().Containers.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(containers) != 0 {
		t.Errorf("containers = %d, want rollback to leave none", len(containers))
	}
}
