package repositories

import (
	"context"

	"parttrack/apperror"
	"parttrack/models"
	"parttrack/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		return translate(err, "location %s", loc.Name)
	}
	return nil
}

func (r *LocationRepository) CreateBatch(ctx context.Context, locs []models.Location) error {
	if len(locs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&locs, 200).Error; err != nil {
		return translate(err, "location batch")
	}
	return nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id types.SnowflakeID) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		return nil, translate(err, "location %s", id)
	}
	return &loc, nil
}

// ExistingNames returns which of names are already stored.
func (r *LocationRepository) ExistingNames(ctx context.Context, names []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(names) == 0 {
		return existing, nil
	}
	var found []string
	if err := r.db.WithContext(ctx).Model(&models.Location{}).Where("name IN ?", names).Pluck("name", &found).Error; err != nil {
		return nil, translate(err, "location names")
	}
	for _, n := range found {
		existing[n] = true
	}
	return existing, nil
}

// LockNames is ExistingNames taken FOR UPDATE. Shelf checks call it first
// so two transactions claiming the same shelf run one after the other.
// Rows are locked in name order; SQLite ignores the locking clause and
// relies on its single connection instead.
func (r *LocationRepository) LockNames(ctx context.Context, names []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(names) == 0 {
		return existing, nil
	}
	var found []string
	err := r.db.WithContext(ctx).Model(&models.Location{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name IN ?", names).
		Order("name ASC").
		Pluck("name", &found).Error
	if err != nil {
		return nil, translate(err, "location names")
	}
	for _, n := range found {
		existing[n] = true
	}
	return existing, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locs).Error; err != nil {
		return nil, translate(err, "location list")
	}
	return locs, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id types.SnowflakeID) error {
	res := r.db.WithContext(ctx).Delete(&models.Location{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "location %s", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("location %s not found", id)
	}
	return nil
}
