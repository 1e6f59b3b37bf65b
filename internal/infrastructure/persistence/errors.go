package persistence

import (
	"errors"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories classify
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
)

// TranslateError maps driver errors to domain errors. Lost races become
// CONCURRENCY_CONFLICT so that callers can retry; everything it does not
// recognise is returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewConflictError("record already exists")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.NewConflictError("record is referenced by or references missing data")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return shared.ErrConcurrencyConflict
		case pgUniqueViolation:
			return shared.NewConflictError("record already exists")
		case pgForeignKeyViolation:
			return shared.NewConflictError("record is referenced by or references missing data")
		}
	}
	return err
}
