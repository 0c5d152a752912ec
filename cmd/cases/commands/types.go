package commands

import (
	"errors"

	"github.com/robalyx/modcase/internal/database/service"
	"github.com/robalyx/modcase/internal/events"
	"github.com/robalyx/modcase/internal/propagation"
	"go.uber.org/zap"
)

var (
	// ErrCaseIDRequired is returned when a command expecting one CASE_ID gets none or several.
	ErrCaseIDRequired = errors.New("CASE_ID argument required")
	// ErrUserIDRequired is returned when a command expecting one USER_ID gets none or several.
	ErrUserIDRequired = errors.New("USER_ID argument required")
	// ErrModeratorRequired is returned when the moderator command gets no MODERATOR_ID.
	ErrModeratorRequired = errors.New("MODERATOR_ID argument required")
	// ErrPropagationDisabled is returned by propagation commands when no Discord token is configured.
	ErrPropagationDisabled = errors.New("propagation needs discord.token to be configured")
	// ErrEventsDisabled is returned by the events command when Redis is not enabled.
	ErrEventsDisabled = errors.New("the event stream needs redis.enabled to be set")
)

// CLIDependencies holds the common dependencies needed by CLI commands.
type CLIDependencies struct {
	Cases      *service.CaseService
	Dispatcher *propagation.Dispatcher // nil when propagation is not configured
	Events     *events.Publisher       // nil when the event stream is disabled
	Logger     *zap.Logger
}
