package setup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robalyx/modcase/internal/database"
	"github.com/robalyx/modcase/internal/discord"
	"github.com/robalyx/modcase/internal/discord/rate"
	"github.com/robalyx/modcase/internal/events"
	"github.com/robalyx/modcase/internal/propagation"
	"github.com/robalyx/modcase/internal/redis"
	"github.com/robalyx/modcase/internal/setup/config"
	"github.com/robalyx/modcase/internal/setup/telemetry"
	"go.uber.org/zap"
)

// ErrPendingMigrations is returned when the schema is behind and auto migration is off.
var ErrPendingMigrations = errors.New("database migrations are pending")

// App bundles all core dependencies and services needed by the application.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DBLogger     *zap.Logger
	DB           database.Client
	RedisManager *redis.Manager          // nil when the event stream is disabled
	Events       *events.Publisher       // nil when the event stream is disabled
	Dispatcher   *propagation.Dispatcher // nil without a Discord token
	LogManager   *telemetry.Manager
}

// InitializeApp loads the config and bootstraps every subsystem in dependency order.
func InitializeApp(ctx context.Context, component, logDir string) (*App, error) {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	return InitializeWithConfig(ctx, cfg, component, logDir)
}

// InitializeWithConfig bootstraps every subsystem from an already loaded config.
func InitializeWithConfig(ctx context.Context, cfg *config.Config, component, logDir string) (*App, error) {
	// Logging comes first to capture setup issues
	logManager := telemetry.NewManager(component, logDir, &cfg.Debug)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		logManager.Close()
		return nil, err
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		DBLogger:   dbLogger.Named("database"),
		LogManager: logManager,
	}

	app.DB, err = database.NewConnection(ctx, cfg, app.DBLogger)
	if err != nil {
		app.Cleanup()
		return nil, err
	}

	if !cfg.Storage.AutoMigrate {
		pending, err := database.PendingMigrations(ctx, app.DB.DB())
		if err != nil {
			app.Cleanup()
			return nil, err
		}

		if len(pending) > 0 {
			app.Cleanup()
			return nil, fmt.Errorf("%w: %s (run the db migrate command)", ErrPendingMigrations, strings.Join(pending, ", "))
		}
	}

	if cfg.Redis.Enabled {
		app.RedisManager = redis.NewManager(&cfg.Redis, logger)

		client, err := app.RedisManager.GetClient(redis.EventsDBIndex)
		if err != nil {
			app.Cleanup()
			return nil, err
		}

		app.Events = events.NewPublisher(client, cfg.Redis.Stream, logger)
		app.DB.Service().Case().SetEventSink(app.Events)
	}

	if cfg.Discord.Token != "" {
		var opts []discord.Option
		if cfg.Discord.RequestInterval > 0 {
			opts = append(opts, discord.WithLimiter(rate.New(
				time.Duration(cfg.Discord.RequestInterval)*time.Millisecond,
				time.Duration(cfg.Discord.RequestJitter)*time.Millisecond,
			)))
		}

		app.Dispatcher = propagation.NewDispatcher(
			discord.NewExecutor(cfg.Discord.Token, logger, opts...),
			app.DB.Model().Propagation(),
			&cfg.Propagation,
			logger,
		)
	}

	logger.Info("Application initialized",
		zap.String("component", component),
		zap.String("instanceID", logManager.GetInstanceID()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("events", app.Events != nil),
		zap.Bool("propagation", app.Dispatcher != nil))

	return app, nil
}

// Cleanup shuts down all components in reverse initialization order.
// Failures are logged so every component still gets a cleanup attempt.
func (s *App) Cleanup() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}

	if s.RedisManager != nil {
		s.RedisManager.Close()
	}

	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	s.LogManager.Close()
}
