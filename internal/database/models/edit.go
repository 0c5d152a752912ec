package models

import (
	"context"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// EditModel handles the append-only case edit ledger.
// It exposes no update or delete operation.
type EditModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewEdit creates a new edit model instance.
func NewEdit(db *bun.DB, logger *zap.Logger) *EditModel {
	return &EditModel{
		db:     db,
		logger: logger.Named("db_edit"),
	}
}

// Record appends one row per changed field. It must share a transaction
// with the case update it describes.
func (m *EditModel) Record(ctx context.Context, idb bun.IDB, edits []*types.CaseEdit) error {
	if len(edits) == 0 {
		return nil
	}

	if _, err := idb.NewInsert().Model(&edits).Exec(ctx); err != nil {
		return storageError("failed to record case edits", err)
	}

	m.logger.Debug("Recorded case edits",
		zap.String("caseID", edits[0].CaseID),
		zap.Int("fields", len(edits)))

	return nil
}

// History returns every edit of a case, newest first.
func (m *EditModel) History(ctx context.Context, scope, caseID string) ([]*types.CaseEdit, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.CaseEdit, error) {
		var edits []*types.CaseEdit

		err := m.db.NewSelect().
			Model(&edits).
			Where("guild_id = ?", scope).
			Where("case_id = ?", caseID).
			Order("created_at DESC", "id DESC").
			Scan(ctx)
		if err != nil {
			return nil, storageError("failed to get case history", err)
		}

		return edits, nil
	})
}
