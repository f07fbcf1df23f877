package services

import (
	"context"
	"strings"

	"parttrack/apperror"
	"parttrack/inventory"
	"parttrack/logger"
	"parttrack/models"
	"parttrack/repositories"
	"parttrack/types"
)

type ContainerService struct {
	store *repositories.Store
	log   *logger.Logger
}

func NewContainerService(d Deps) *ContainerService {
	d = d.withDefaults()
	return &ContainerService{store: d.Store, log: d.Log}
}

func (s *ContainerService) GetContainer(ctx context.Context, id types.SnowflakeID) (*models.Container, error) {
	return s.store.Repos().Containers.FindByID(ctx, id)
}

func (s *ContainerService) ListContainers(ctx context.Context, jobNumber string) ([]models.Container, error) {
	return s.store.Repos().Containers.List(ctx, strings.TrimSpace(jobNumber))
}

// MoveContainer reassigns a container's shelf. An empty shelf takes it off
// the shelves; otherwise the shelf must exist and be free or be the one the
// container is already on.
func (s *ContainerService) MoveContainer(ctx context.Context, id types.SnowflakeID, shelf string, by string) (*models.Container, error) {
	shelf = strings.TrimSpace(shelf)

	var moved *models.Container
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		c, err := tx.Containers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if shelf == "" {
			if err := tx.Containers.UpdateShelf(ctx, id, nil); err != nil {
				return err
			}
			c.ShelfLocation = nil
			moved = c
			return nil
		}

		locked, err := tx.Locations.LockNames(ctx, []string{shelf})
		if err != nil {
			return err
		}
		if !locked[shelf] {
			return apperror.NotFound("location %s not found", shelf)
		}
		if shelf != c.Shelf() {
			locations, err := tx.Locations.List(ctx)
			if err != nil {
				return err
			}
			boms, err := tx.Boms.List(ctx, "")
			if err != nil {
				return err
			}
			if !isEligible(inventory.EligibleShelves(locations, inventory.NewShelfIndex(boms), nil, c.Shelf()), shelf) {
				return shelfOccupiedError(shelf)
			}
		}

		if err := tx.Containers.UpdateShelf(ctx, id, &shelf); err != nil {
			return err
		}
		c.ShelfLocation = &shelf
		moved = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("container moved", "container_id", id, "shelf_location", shelf, "moved_by", by)
	return moved, nil
}

func (s *ContainerService) DeleteContainer(ctx context.Context, id types.SnowflakeID, by string) error {
	err := s.store.RunTransaction(ctx, func(tx repositories.Repos) error {
		return tx.Containers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("container deleted", "container_id", id, "deleted_by", by)
	return nil
}

func isEligible(eligible []models.Location, name string) bool {
	for _, l := range eligible {
		if l.Name == name {
			return true
		}
	}
	return false
}
