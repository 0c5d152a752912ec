package models

import (
	"context"
	"time"

	"github.com/robalyx/modcase/internal/database/dbretry"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Action types counted under each guild statistics bucket.
var (
	muteActionTypes = []enum.ActionType{ //nolint:gochecknoglobals // -
		enum.ActionTypeMute, enum.ActionTypeTimeout, enum.ActionTypeGlobalMute,
	}
	kickActionTypes = []enum.ActionType{ //nolint:gochecknoglobals // -
		enum.ActionTypeKick, enum.ActionTypeGlobalKick,
	}
	banActionTypes = []enum.ActionType{ //nolint:gochecknoglobals // -
		enum.ActionTypeBan, enum.ActionTypeGlobalBan,
	}
)

// CaseStatsModel handles the aggregate queries over cases.
// Every query excludes voided cases through the shared notVoided predicate.
type CaseStatsModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCaseStats creates a new case statistics model instance.
func NewCaseStats(db *bun.DB, logger *zap.Logger) *CaseStatsModel {
	return &CaseStatsModel{
		db:     db,
		logger: logger.Named("db_case_stats"),
	}
}

// UserWarnPoints sums the points of a user's active warnings in a scope.
func (m *CaseStatsModel) UserWarnPoints(ctx context.Context, scope, userID string) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		var total int

		err := m.db.NewSelect().
			Model((*types.Case)(nil)).
			ColumnExpr("COALESCE(SUM(points), 0)").
			Where("guild_id = ?", scope).
			Where("user_id = ?", userID).
			Where("action_type = ?", enum.ActionTypeWarn).
			Where("status = ?", enum.CaseStatusActive).
			Apply(notVoided).
			Scan(ctx, &total)
		if err != nil {
			return 0, storageError("failed to sum warn points", err)
		}

		return total, nil
	})
}

// GuildStats counts the cases of a scope by action and status.
func (m *CaseStatsModel) GuildStats(ctx context.Context, scope string) (*types.GuildStats, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.GuildStats, error) {
		var stats types.GuildStats

		err := m.db.NewSelect().
			Model((*types.Case)(nil)).
			ColumnExpr("COUNT(*) AS total").
			ColumnExpr("COALESCE(SUM(CASE WHEN action_type = ? THEN 1 ELSE 0 END), 0) AS warns", enum.ActionTypeWarn).
			ColumnExpr("COALESCE(SUM(CASE WHEN action_type IN (?) THEN 1 ELSE 0 END), 0) AS mutes", bun.In(muteActionTypes)).
			ColumnExpr("COALESCE(SUM(CASE WHEN action_type IN (?) THEN 1 ELSE 0 END), 0) AS kicks", bun.In(kickActionTypes)).
			ColumnExpr("COALESCE(SUM(CASE WHEN action_type IN (?) THEN 1 ELSE 0 END), 0) AS bans", bun.In(banActionTypes)).
			ColumnExpr("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active", enum.CaseStatusActive).
			ColumnExpr("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS deleted", enum.CaseStatusDeleted).
			Where("guild_id = ?", scope).
			Apply(notVoided).
			Scan(ctx, &stats)
		if err != nil {
			return nil, storageError("failed to get guild stats", err)
		}

		return &stats, nil
	})
}

// ModeratorStats ranks moderators of a scope by the cases they issued since
// the given time, highest first.
func (m *CaseStatsModel) ModeratorStats(
	ctx context.Context, scope string, since time.Time, limit int,
) ([]types.ModeratorStats, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]types.ModeratorStats, error) {
		var stats []types.ModeratorStats

		query := m.db.NewSelect().
			Model((*types.Case)(nil)).
			Column("moderator_id").
			ColumnExpr("COUNT(*) AS case_count").
			Where("guild_id = ?", scope).
			Where("created_at >= ?", since.UTC()).
			Apply(notVoided).
			Group("moderator_id").
			OrderExpr("case_count DESC, moderator_id ASC")

		if limit > 0 {
			query = query.Limit(limit)
		}

		if err := query.Scan(ctx, &stats); err != nil {
			return nil, storageError("failed to get moderator stats", err)
		}

		return stats, nil
	})
}
