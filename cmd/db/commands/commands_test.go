package commands_test

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/robalyx/modcase/cmd/db/commands"
	"github.com/robalyx/modcase/internal/database"
	"github.com/robalyx/modcase/internal/database/migrations"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"
)

func setupDeps(t *testing.T) *commands.CLIDependencies {
	t.Helper()

	logger := zaptest.NewLogger(t)

	db, err := database.NewSQLite(t.Context(), filepath.Join(t.TempDir(), "modcase.db"), logger, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &commands.CLIDependencies{
		DB:       db,
		Migrator: migrate.NewMigrator(db.DB(), migrations.Migrations),
		Logger:   logger,
	}
}

// runCLI runs a fresh root command and returns what it printed.
func runCLI(t *testing.T, deps *commands.CLIDependencies, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := &cli.Command{
		Name:     "db",
		Writer:   &out,
		Commands: slices.Concat(commands.MigrationCommands(deps), commands.CounterCommands(deps)),
	}

	err := app.Run(t.Context(), append([]string{"db"}, args...))

	return out.String(), err
}

func TestMigrationCommands(t *testing.T) {
	t.Parallel()

	deps := setupDeps(t)

	out, err := runCLI(t, deps, "status")
	require.NoError(t, err)

	var before commands.MigrationStatus
	require.NoError(t, sonic.UnmarshalString(out, &before))
	assert.Empty(t, before.Applied)
	assert.Len(t, before.Unapplied, 2)

	_, err = runCLI(t, deps, "migrate")
	require.NoError(t, err)

	out, err = runCLI(t, deps, "status")
	require.NoError(t, err)

	var after commands.MigrationStatus
	require.NoError(t, sonic.UnmarshalString(out, &after))
	assert.Len(t, after.Applied, 2)
	assert.Empty(t, after.Unapplied)
	assert.Equal(t, int64(1), after.LastGroup)

	_, err = runCLI(t, deps, "rollback")
	require.ErrorIs(t, err, commands.ErrNotConfirmed)

	_, err = runCLI(t, deps, "rollback", "--yes")
	require.NoError(t, err)

	pending, err := database.PendingMigrations(t.Context(), deps.DB.DB())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestCounterCommand(t *testing.T) {
	t.Parallel()

	deps := setupDeps(t)
	require.NoError(t, database.Migrate(t.Context(), deps.DB.DB(), deps.Logger))

	_, err := deps.DB.Service().Case().Create(t.Context(), &types.NewCase{
		GuildID: "G1", UserID: "U1", ModeratorID: "M1", ActionType: enum.ActionTypeWarn, Reason: "spam",
	})
	require.NoError(t, err)

	out, err := runCLI(t, deps, "counter", "G1")
	require.NoError(t, err)

	var status commands.CounterStatus
	require.NoError(t, sonic.UnmarshalString(out, &status))
	assert.Equal(t, commands.CounterStatus{Scope: "G1", Current: 1, Next: "CASE-0002"}, status)

	out, err = runCLI(t, deps, "counter", "global")
	require.NoError(t, err)
	require.NoError(t, sonic.UnmarshalString(out, &status))
	assert.Equal(t, commands.CounterStatus{Scope: types.GlobalScope, Current: 0, Next: "GLOBAL-0001"}, status)

	_, err = runCLI(t, deps, "counter")
	require.ErrorIs(t, err, commands.ErrScopeRequired)
}
