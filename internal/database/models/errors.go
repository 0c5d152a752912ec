package models

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// storageError marks err as a persistence failure unless it already is one.
func storageError(op string, err error) error {
	if errors.Is(err, types.ErrStorage) {
		return err
	}

	return fmt.Errorf("%w: %s: %w", types.ErrStorage, op, err)
}

// isUniqueViolation reports whether err came from a unique constraint.
func isUniqueViolation(err error) bool {
	var pgerr pgdriver.Error
	if errors.As(err, &pgerr) {
		return pgerr.Field('C') == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

// isNoRows reports whether a single-row select found nothing.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// lockForUpdate adds a row lock where the dialect supports one.
// SQLite serializes writers on its single connection instead.
func lockForUpdate(idb bun.IDB) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if idb.Dialect().Name() == dialect.PG {
			return q.For("UPDATE")
		}
		return q
	}
}
