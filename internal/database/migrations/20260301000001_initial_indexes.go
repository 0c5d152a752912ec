package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// caseIndexes back the secondary lookups of the case store.
var caseIndexes = []struct { //nolint:gochecknoglobals // -
	name string
	stmt string
}{
	{
		"idx_cases_guild_user_time",
		"CREATE INDEX IF NOT EXISTS idx_cases_guild_user_time ON cases (guild_id, user_id, created_at DESC, id DESC)",
	},
	{
		"idx_cases_guild_status_time",
		"CREATE INDEX IF NOT EXISTS idx_cases_guild_status_time ON cases (guild_id, status, created_at DESC, id DESC)",
	},
	{
		"idx_cases_moderator_time",
		"CREATE INDEX IF NOT EXISTS idx_cases_moderator_time ON cases (moderator_id, created_at DESC, id DESC)",
	},
	{
		"idx_case_edits_case_time",
		"CREATE INDEX IF NOT EXISTS idx_case_edits_case_time ON case_edits (guild_id, case_id, created_at DESC, id DESC)",
	},
	{
		"idx_propagation_logs_case_time",
		"CREATE INDEX IF NOT EXISTS idx_propagation_logs_case_time ON propagation_logs (case_id, started_at DESC)",
	},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, index := range caseIndexes {
			if _, err := db.NewRaw(index.stmt).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", index.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for i := len(caseIndexes) - 1; i >= 0; i-- {
			stmt := "DROP INDEX IF EXISTS " + caseIndexes[i].name
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop index %s: %w", caseIndexes[i].name, err)
			}
		}

		return nil
	})
}
