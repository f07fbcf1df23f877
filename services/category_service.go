package services

import (
	"context"
	"errors"
	"strings"

	"parttrack/apperror"
	"parttrack/logger"
	"parttrack/models"
	"parttrack/repositories"
	"parttrack/types"
	"parttrack/validation"
)

type CategoryService struct {
	store *repositories.Store
	log   *logger.Logger
}

func NewCategoryService(d Deps) *CategoryService {
	d = d.withDefaults()
	return &CategoryService{store: d.Store, log: d.Log}
}

func (s *CategoryService) CreateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if err := validation.Struct(c); err != nil {
		return nil, err
	}

	repo := s.store.Repos().Categories
	if _, err := repo.FindByName(ctx, c.Name); err == nil {
		return nil, apperror.Validation("category %s already exists", c.Name)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if err := repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.log.Info("category created", "name", c.Name)
	return &c, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Repos().Categories.List(ctx)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id types.SnowflakeID) error {
	if err := s.store.Repos().Categories.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("category deleted", "category_id", id)
	return nil
}
