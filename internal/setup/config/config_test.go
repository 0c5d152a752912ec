package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalyx/modcase/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigName+".toml"), []byte(body), 0o600))
}

func TestLoadConfigFrom(t *testing.T) {
	t.Parallel()

	t.Run("loads first matching path and keeps defaults", func(t *testing.T) {
		t.Parallel()

		empty := t.TempDir()
		dir := t.TempDir()
		writeConfig(t, dir, `
version = 1

[storage]
driver = "postgres"

[propagation]
max_concurrency = 3
`)

		cfg, used, err := config.LoadConfigFrom([]string{empty, dir})
		require.NoError(t, err)

		assert.Equal(t, dir, used)
		assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, 3, cfg.Propagation.MaxConcurrency)
		assert.Equal(t, 10*time.Second, cfg.Propagation.TargetTimeout())
		assert.Equal(t, 5432, cfg.PostgreSQL.Port)
		assert.Equal(t, "modcase:events", cfg.Redis.Stream)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := config.LoadConfigFrom([]string{t.TempDir()})
		require.ErrorIs(t, err, config.ErrConfigFileNotFound)
	})

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "missing version",
			body:    `[storage]` + "\n" + `driver = "sqlite"`,
			wantErr: config.ErrConfigVersionMissing,
		},
		{
			name:    "version mismatch",
			body:    `version = 99`,
			wantErr: config.ErrConfigVersionMismatch,
		},
		{
			name:    "unknown driver",
			body:    "version = 1\n[storage]\ndriver = \"mysql\"",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "zero concurrency",
			body:    "version = 1\n[propagation]\nmax_concurrency = 0",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "negative request pacing",
			body:    "version = 1\n[discord]\nrequest_interval = -5",
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, _, err := config.LoadConfigFrom([]string{dir})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Parallel()

	cfg, _, err := config.LoadConfigFrom([]string{filepath.Join("..", "..", "..", "config")})
	require.NoError(t, err)

	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Empty(t, cfg.Discord.Token)
	assert.Equal(t, 250, cfg.Discord.RequestInterval)
}
