package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
)

// translateDBError lifts gorm's translated driver errors into the domain
// taxonomy. Requires gorm.Config{TranslateError: true} on the session.
func translateDBError(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &helpers.NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return helpers.NewConflictError("%s already exists", resource)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return helpers.NewConflictError("%s is still referenced by other records", resource)
	}
	return err
}
