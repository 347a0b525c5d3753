// Package pgerr maps PostgreSQL and GORM errors onto the errs taxonomy so the
// application layer never sees driver types.
package pgerr

import (
	"errors"

	"lechon/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Map translates err for the given operation on entity id:
//   - gorm.ErrRecordNotFound becomes errs.ErrObjectNotFound
//   - a unique violation becomes errs.ErrObjectAlreadyExists
//   - anything else becomes errs.ErrStorageFailure
//
// Errors that already belong to the errs taxonomy pass through.
func Map(operation, entity string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrStorageFailure):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError(entity, id)
	case IsUniqueViolation(err):
		return errs.NewObjectAlreadyExistsErrorWithCause(entity, id, err)
	default:
		return errs.NewStorageFailureError(operation, err)
	}
}
