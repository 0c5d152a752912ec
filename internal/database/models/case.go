package models

import (
	"context"
	"fmt"
	"time"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// updatableColumns lists the case columns that may be changed after insert.
// Identity columns (case_id, guild_id, user, moderator, action_type) are absent.
var updatableColumns = map[string]struct{}{ //nolint:gochecknoglobals // -
	"reason":      {},
	"evidence":    {},
	"points":      {},
	"status":      {},
	"deleted_at":  {},
	"deleted_by":  {},
	"voided_at":   {},
	"voided_by":   {},
	"void_reason": {},
}

// notVoided is the exclusion rule shared by every standard listing and aggregate.
func notVoided(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("voided_at IS NULL")
}

// newestFirst orders cases by issue time with the insertion sequence as tiebreaker.
func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("created_at DESC", "id DESC")
}

// CaseModel handles database operations for moderation cases.
type CaseModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCase creates a new case model instance.
func NewCase(db *bun.DB, logger *zap.Logger) *CaseModel {
	return &CaseModel{
		db:     db,
		logger: logger.Named("db_case"),
	}
}

// Put inserts a new case. It fails with ErrCaseExists if the identifier is
// already taken in the case's scope.
func (m *CaseModel) Put(ctx context.Context, idb bun.IDB, c *types.Case) error {
	_, err := idb.NewInsert().Model(c).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w: %s in %s", types.ErrStorage, types.ErrCaseExists, c.CaseID, c.GuildID)
		}
		return storageError("failed to insert case", err)
	}

	m.logger.Debug("Inserted case",
		zap.String("caseID", c.CaseID),
		zap.String("guildID", c.GuildID),
		zap.String("actionType", c.ActionType.String()))

	return nil
}

// Get retrieves a case by scope and identifier, voided cases included.
func (m *CaseModel) Get(ctx context.Context, scope, caseID string) (*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Case, error) {
		return m.get(ctx, m.db, scope, caseID, nil)
	})
}

// GetForUpdate retrieves a case inside a transaction, locking its row on
// dialects that support row locks.
func (m *CaseModel) GetForUpdate(ctx context.Context, idb bun.IDB, scope, caseID string) (*types.Case, error) {
	return m.get(ctx, idb, scope, caseID, lockForUpdate(idb))
}

func (m *CaseModel) get(
	ctx context.Context, idb bun.IDB, scope, caseID string, apply func(*bun.SelectQuery) *bun.SelectQuery,
) (*types.Case, error) {
	var c types.Case

	err := idb.NewSelect().
		Model(&c).
		Where("guild_id = ?", scope).
		Where("case_id = ?", caseID).
		Apply(apply).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrCaseNotFound, caseID)
		}
		return nil, storageError("failed to get case", err)
	}

	return &c, nil
}

// Update applies a partial update to a case currently in the expected status
// and bumps updated_at. Zero affected rows means the case changed underneath
// the caller and is reported as ErrInvalidTransition.
func (m *CaseModel) Update(
	ctx context.Context, idb bun.IDB, scope, caseID string, expected enum.CaseStatus, fields map[string]any,
) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", types.ErrValidation)
	}

	query := idb.NewUpdate().
		Model((*types.Case)(nil)).
		Set("updated_at = ?", time.Now().UTC())

	for column, value := range fields {
		if _, ok := updatableColumns[column]; !ok {
			return fmt.Errorf("%w: column %q is not updatable", types.ErrValidation, column)
		}
		query = query.Set("? = ?", bun.Ident(column), value)
	}

	result, err := query.
		Where("guild_id = ?", scope).
		Where("case_id = ?", caseID).
		Where("status = ?", expected).
		Exec(ctx)
	if err != nil {
		return storageError("failed to update case", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to read affected rows", err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s is no longer %s", types.ErrInvalidTransition, caseID, expected)
	}

	return nil
}

// ListByUser returns a user's cases in a scope, newest first. Only active
// cases are returned unless includeDeleted is set. Voided cases never are.
func (m *CaseModel) ListByUser(
	ctx context.Context, scope, userID string, includeDeleted bool,
) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		query := m.db.NewSelect().
			Model(&cases).
			Where("guild_id = ?", scope).
			Where("user_id = ?", userID).
			Apply(notVoided)

		if !includeDeleted {
			query = query.Where("status = ?", enum.CaseStatusActive)
		}

		if err := query.Apply(newestFirst).Scan(ctx); err != nil {
			return nil, storageError("failed to list user cases", err)
		}

		return cases, nil
	})
}

// ListDeletedByUser returns a user's soft-deleted, non-voided cases, newest first.
func (m *CaseModel) ListDeletedByUser(ctx context.Context, scope, userID string) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		err := m.db.NewSelect().
			Model(&cases).
			Where("guild_id = ?", scope).
			Where("user_id = ?", userID).
			Where("deleted_at IS NOT NULL").
			Apply(notVoided).
			Apply(newestFirst).
			Scan(ctx)
		if err != nil {
			return nil, storageError("failed to list deleted cases", err)
		}

		return cases, nil
	})
}

// ListByGuild returns the cases of a scope matching the filter, newest first.
func (m *CaseModel) ListByGuild(ctx context.Context, scope string, filter types.CaseFilter) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		query := m.db.NewSelect().
			Model(&cases).
			Where("guild_id = ?", scope)

		if filter.Status != 0 {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.ActionType != 0 {
			query = query.Where("action_type = ?", filter.ActionType)
		}
		if filter.ModeratorID != "" {
			query = query.Where("moderator_id = ?", filter.ModeratorID)
		}
		if !filter.IncludeVoided {
			query = query.Apply(notVoided)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}

		if err := query.Apply(newestFirst).Scan(ctx); err != nil {
			return nil, storageError("failed to list guild cases", err)
		}

		return cases, nil
	})
}

// ListByModerator returns the non-voided cases a moderator issued in any
// scope, newest first.
func (m *CaseModel) ListByModerator(ctx context.Context, moderatorID string, limit int) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		query := m.db.NewSelect().
			Model(&cases).
			Where("moderator_id = ?", moderatorID).
			Apply(notVoided).
			Apply(newestFirst)

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx); err != nil {
			return nil, storageError("failed to list moderator cases", err)
		}

		return cases, nil
	})
}
