package models

import (
	"context"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// nextNumberQuery creates the scope row on first use and increments it in
// one statement, so concurrent callers can never read the same value.
const nextNumberQuery = `INSERT INTO case_counters (guild_id, current_number) VALUES (?, 1)
ON CONFLICT (guild_id) DO UPDATE SET current_number = case_counters.current_number + 1
RETURNING current_number`

// CounterModel handles the per-scope case identifier counters.
type CounterModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCounter creates a new counter model instance.
func NewCounter(db *bun.DB, logger *zap.Logger) *CounterModel {
	return &CounterModel{
		db:     db,
		logger: logger.Named("db_counter"),
	}
}

// Next advances the counter of a scope and returns the new value.
// It must run in the same transaction as the insert that consumes the
// value so a failed insert rolls the increment back.
func (m *CounterModel) Next(ctx context.Context, idb bun.IDB, scope string) (int64, error) {
	var next int64

	if err := idb.NewRaw(nextNumberQuery, scope).Scan(ctx, &next); err != nil {
		return 0, storageError("failed to advance case counter", err)
	}

	m.logger.Debug("Allocated case number",
		zap.String("scope", scope),
		zap.Int64("number", next))

	return next, nil
}

// Current returns the last issued number of a scope, or 0 if none was issued.
func (m *CounterModel) Current(ctx context.Context, scope string) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		var counter types.CaseCounter

		err := m.db.NewSelect().
			Model(&counter).
			Where("guild_id = ?", scope).
			Scan(ctx)
		if err != nil {
			if isNoRows(err) {
				return 0, nil
			}
			return 0, storageError("failed to read case counter", err)
		}

		return counter.CurrentNumber, nil
	})
}
