package models

import (
	"context"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PropagationModel handles database operations for propagation logs.
type PropagationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPropagation creates a new propagation model instance.
func NewPropagation(db *bun.DB, logger *zap.Logger) *PropagationModel {
	return &PropagationModel{
		db:     db,
		logger: logger.Named("db_propagation"),
	}
}

// Log stores the outcome of a propagation run.
func (m *PropagationModel) Log(ctx context.Context, log *types.PropagationLog) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		if _, err := m.db.NewInsert().Model(log).Exec(ctx); err != nil {
			return storageError("failed to log propagation", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Logged propagation",
		zap.String("batchID", log.BatchID),
		zap.String("caseID", log.CaseID),
		zap.Int("succeeded", log.SucceededCount),
		zap.Int("failed", log.FailedCount))

	return nil
}

// ListByCase returns the propagation runs of a global case, newest first.
func (m *PropagationModel) ListByCase(ctx context.Context, caseID string) ([]*types.PropagationLog, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.PropagationLog, error) {
		var logs []*types.PropagationLog

		err := m.db.NewSelect().
			Model(&logs).
			Where("case_id = ?", caseID).
			Order("started_at DESC", "id DESC").
			Scan(ctx)
		if err != nil {
			return nil, storageError("failed to list propagation logs", err)
		}

		return logs, nil
	})
}
