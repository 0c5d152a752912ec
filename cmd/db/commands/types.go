package commands

import (
	"errors"

	"github.com/robalyx/modcase/internal/database"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

var (
	// ErrNameRequired is returned when create gets no migration NAME.
	ErrNameRequired = errors.New("NAME argument required")
	// ErrScopeRequired is returned when counter gets no SCOPE.
	ErrScopeRequired = errors.New("SCOPE argument required")
	// ErrNotConfirmed is returned when rollback is run without --yes.
	ErrNotConfirmed = errors.New("rollback needs --yes to confirm")
)

// CLIDependencies holds the common dependencies needed by CLI commands.
type CLIDependencies struct {
	DB       database.Client
	Migrator *migrate.Migrator
	Logger   *zap.Logger
}
