package repositories

import (
	"context"
	"errors"
	"time"

	"parttrack/apperror"
	"parttrack/logger"

	"gorm.io/gorm"
)

// Repos is the set of repositories bound to one connection or transaction.
type Repos struct {
	Boms       *BomRepository
	Containers *ContainerRepository
	Locations  *LocationRepository
	Jobs       *JobRepository
	History    *HistoryRepository
	Categories *CategoryRepository
}

func newRepos(db *gorm.DB) Repos {
	return Repos{
		Boms:       NewBomRepository(db),
		Containers: NewContainerRepository(db),
		Locations:  NewLocationRepository(db),
		Jobs:       NewJobRepository(db),
		History:    NewHistoryRepository(db),
		Categories: NewCategoryRepository(db),
	}
}

// Store owns the database handle. Services get it injected at startup.
type Store struct {
	db          *gorm.DB
	maxAttempts int
	log         *logger.Logger
	repos       Repos
}

func NewStore(db *gorm.DB, maxAttempts int, log *logger.Logger) *Store {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{db: db, maxAttempts: maxAttempts, log: log, repos: newRepos(db)}
}

// Repos returns repositories outside any transaction, for reads.
func (s *Store) Repos() Repos {
	return s.repos
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// RunTransaction runs fn inside one database transaction and commits when
// fn returns nil. When a BOM save inside fn finds the version moved,
// the transaction is rolled back and fn runs again with fresh reads, up to
// the configured number of attempts. fn must therefore do all its reads
// through the Repos it is given.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx Repos) error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.runOnce(ctx, fn)
		if err == nil || !errors.Is(err, errVersionConflict) {
			return err
		}
		if attempt == s.maxAttempts {
			break
		}
		s.log.Debug("transaction conflict, retrying", "attempt", attempt, "max_attempts", s.maxAttempts)

		select {
		case <-ctx.Done():
			return apperror.StoreUnavailable(ctx.Err())
		case <-time.After(time.Duration(attempt) * 5 * time.Millisecond):
		}
	}
	return apperror.Conflict("the inventory was changed by someone else, please try again", err)
}

func (s *Store) runOnce(ctx context.Context, fn func(tx Repos) error) (err error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperror.StoreUnavailable(tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(newRepos(tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperror.StoreUnavailable(err)
	}
	return nil
}
