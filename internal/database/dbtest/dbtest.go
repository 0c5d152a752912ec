// Package dbtest opens throwaway database clients for tests.
package dbtest

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/robalyx/modcase/internal/database"
	"github.com/robalyx/modcase/internal/setup/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// PostgresHostEnv names the variable that enables Postgres-backed tests.
const PostgresHostEnv = "MODCASE_TEST_POSTGRES_HOST"

// migrateMu keeps tests in one binary from migrating the shared Postgres
// database at the same time.
var migrateMu sync.Mutex //nolint:gochecknoglobals // -

// NewClient returns a migrated client over a fresh SQLite file that is
// closed when the test ends.
func NewClient(t testing.TB) database.Client {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modcase.db")

	client, err := database.NewSQLite(t.Context(), path, zaptest.NewLogger(t), true)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// NewPostgresClient returns a migrated client for the Postgres server named by
// MODCASE_TEST_POSTGRES_HOST, skipping the test when it is unset. The database
// is shared, so callers should work in a scope no other test uses.
//
// MODCASE_TEST_POSTGRES_PORT, _USER, _PASSWORD and _DB override the defaults
// 5432, postgres, postgres and modcase_test.
func NewPostgresClient(t testing.TB) database.Client {
	t.Helper()

	host := os.Getenv(PostgresHostEnv)
	if host == "" {
		t.Skipf("%s is not set", PostgresHostEnv)
	}

	port, err := strconv.Atoi(envOr("MODCASE_TEST_POSTGRES_PORT", "5432"))
	require.NoError(t, err)

	cfg := &config.PostgreSQL{
		Host:         host,
		Port:         port,
		User:         envOr("MODCASE_TEST_POSTGRES_USER", "postgres"),
		Password:     envOr("MODCASE_TEST_POSTGRES_PASSWORD", "postgres"),
		DBName:       envOr("MODCASE_TEST_POSTGRES_DB", "modcase_test"),
		MaxOpenConns: 20,
		MaxIdleConns: 5,
		MaxLifetime:  5,
		MaxIdleTime:  1,
	}

	migrateMu.Lock()
	client, err := database.NewPostgres(t.Context(), cfg, zaptest.NewLogger(t), true)
	migrateMu.Unlock()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
