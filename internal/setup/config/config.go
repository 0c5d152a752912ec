package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrConfigFileNotFound indicates that no config file was found in any search path.
	ErrConfigFileNotFound = errors.New("could not find config file in any config path")
	// ErrConfigVersionMissing indicates that the config file has no version field.
	ErrConfigVersionMissing = errors.New("config file is missing version field")
	// ErrConfigVersionMismatch indicates that the config file version is not supported.
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	// ErrInvalidConfig indicates that a config value is outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config value")
)

// RepositoryVersion is the release whose sample config matches CurrentVersion.
const RepositoryVersion = "v1.0.0"

// CurrentVersion is the config file version this build understands.
const CurrentVersion = 1

// ConfigName is the base name of the config file.
const ConfigName = "modcase"

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application settings.
type Config struct {
	Version     int         `koanf:"version"`
	Debug       Debug       `koanf:"debug"`
	Storage     Storage     `koanf:"storage"`
	PostgreSQL  PostgreSQL  `koanf:"postgresql"`
	Redis       Redis       `koanf:"redis"`
	Discord     Discord     `koanf:"discord"`
	Propagation Propagation `koanf:"propagation"`
}

// Debug contains logging settings.
type Debug struct {
	LogLevel      string `koanf:"log_level"`
	MaxLogsToKeep int    `koanf:"max_logs_to_keep"`
	MaxLogLines   int    `koanf:"max_log_lines"`
}

// Storage selects the case store backend.
type Storage struct {
	Driver      string `koanf:"driver"`
	SQLitePath  string `koanf:"sqlite_path"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// PostgreSQL contains database connection settings.
type PostgreSQL struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	DBName       string `koanf:"db_name"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"`
	MaxIdleTime  int    `koanf:"max_idle_time"`
}

// Redis contains settings for the case event stream.
type Redis struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Stream   string `koanf:"stream"`
}

// Discord contains the credentials used to execute global actions.
type Discord struct {
	Token           string `koanf:"token"`
	RequestInterval int    `koanf:"request_interval"` // Milliseconds between REST calls, 0 disables pacing
	RequestJitter   int    `koanf:"request_jitter"`   // Milliseconds of random spread around the interval
}

// Propagation contains settings for cross-guild fan-out.
type Propagation struct {
	MaxConcurrency int `koanf:"max_concurrency"`
	Timeout        int `koanf:"timeout"` // Seconds per target guild
}

// TargetTimeout returns the per-guild timeout as a duration.
func (p Propagation) TargetTimeout() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// defaults are applied before the config file is loaded.
func defaults() Config {
	return Config{
		Debug: Debug{
			LogLevel:      "info",
			MaxLogsToKeep: 10,
			MaxLogLines:   10000,
		},
		Storage: Storage{
			Driver:      DriverSQLite,
			SQLitePath:  "modcase.db",
			AutoMigrate: true,
		},
		PostgreSQL: PostgreSQL{
			Host:         "localhost",
			Port:         5432,
			DBName:       "modcase",
			MaxOpenConns: 20,
			MaxIdleConns: 5,
			MaxLifetime:  30,
			MaxIdleTime:  5,
		},
		Redis: Redis{
			Host:   "localhost",
			Port:   6379,
			Stream: "modcase:events",
		},
		Propagation: Propagation{
			MaxConcurrency: 5,
			Timeout:        10,
		},
	}
}

// LoadConfig searches the standard config paths for modcase.toml.
func LoadConfig() (*Config, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadConfigFrom([]string{
		".modcase",
		homeDir + "/.modcase/config",
		"/etc/modcase/config",
		"/app/config",
		"config",
		".",
	})
}

// LoadConfigFrom loads the first modcase.toml found in the given directories.
// It returns the directory the file was loaded from.
func LoadConfigFrom(configPaths []string) (*Config, string, error) {
	k := koanf.New(".")

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/%s.toml", path, ConfigName)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, ConfigName)
	}

	config := defaults()
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version, CurrentVersion); err != nil {
		return nil, "", err
	}

	if err := config.validate(); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// validate checks values that would otherwise fail later at runtime.
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q, got %q",
			ErrInvalidConfig, DriverPostgres, DriverSQLite, c.Storage.Driver)
	}

	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("%w: storage.sqlite_path is required for the sqlite driver", ErrInvalidConfig)
	}

	if c.Discord.RequestInterval < 0 || c.Discord.RequestJitter < 0 {
		return fmt.Errorf("%w: discord request pacing cannot be negative", ErrInvalidConfig)
	}

	if c.Propagation.MaxConcurrency < 1 {
		return fmt.Errorf("%w: propagation.max_concurrency must be at least 1", ErrInvalidConfig)
	}

	if c.Propagation.Timeout < 1 {
		return fmt.Errorf("%w: propagation.timeout must be at least 1 second", ErrInvalidConfig)
	}

	return nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, ConfigName)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/modcase/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			ConfigName,
			current,
			expected,
			RepositoryVersion,
			ConfigName,
		)
	}

	return nil
}
