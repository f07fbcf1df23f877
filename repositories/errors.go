package repositories

import (
	"errors"
	"fmt"

	"parttrack/apperror"

	"gorm.io/gorm"
)

// errVersionConflict aborts a transaction attempt when a BOM was saved by
// someone else after it was read.
var errVersionConflict = apperror.Conflict("the BOM was changed by someone else", nil)

// translate maps driver errors onto the service error kinds.
func translate(err error, what string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	subject := fmt.Sprintf(what, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound("%s not found", subject)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Validation("%s already exists", subject)
	}
	return apperror.StoreUnavailable(fmt.Errorf("%s: %w", subject, err))
}
