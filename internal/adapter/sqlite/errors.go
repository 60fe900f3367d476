package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/heartmarshall/vocab-backend/internal/domain"
)

// MapError converts database/sql and go-sqlite3 errors to domain errors.
// context.DeadlineExceeded and context.Canceled are not mapped.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
	}

	if errors.Is(err, sql.ErrConnDone) {
		return domain.StoreUnavailable(fmt.Sprintf("%s %q", entity, key), err)
	}

	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code {
		case sqlite3.ErrConstraint:
			if sqErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
				return fmt.Errorf("%s %q: %w", entity, key, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrValidation)
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
			return domain.StoreUnavailable(fmt.Sprintf("%s %q", entity, key), err)
		}
	}

	return fmt.Errorf("%s %q: %w", entity, key, err)
}
