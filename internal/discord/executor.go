// Package discord executes global case actions through the Discord REST API.
package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/robalyx/modcase/internal/discord/rate"
	"go.uber.org/zap"
)

const (
	// DefaultMuteDuration applies to global mutes created without a duration.
	DefaultMuteDuration = time.Hour
	// MaxTimeout is the longest communication timeout Discord accepts.
	MaxTimeout = 28 * 24 * time.Hour
)

// ErrBanRejected is returned when Discord reports the user as not banned.
var ErrBanRejected = errors.New("discord rejected the ban")

// GuildActions is the subset of the Discord REST client the executor needs.
// rest.Rest satisfies it.
type GuildActions interface {
	BulkBan(guildID snowflake.ID, ban discord.BulkBan, opts ...rest.RequestOpt) (*discord.BulkBanResult, error)
	DeleteBan(guildID snowflake.ID, userID snowflake.ID, opts ...rest.RequestOpt) error
	RemoveMember(guildID snowflake.ID, userID snowflake.ID, opts ...rest.RequestOpt) error
	UpdateMember(
		guildID snowflake.ID, userID snowflake.ID, memberUpdate discord.MemberUpdate, opts ...rest.RequestOpt,
	) (*discord.Member, error)
}

// Executor maps global case actions onto Discord guild moderation calls.
type Executor struct {
	client  GuildActions
	limiter *rate.Limiter
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLimiter paces every request through limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(e *Executor) {
		e.limiter = limiter
	}
}

// NewExecutor creates an executor authenticated with a bot token.
func NewExecutor(token string, logger *zap.Logger, opts ...Option) *Executor {
	return NewExecutorWithClient(rest.New(rest.NewClient(token)), logger, opts...)
}

// NewExecutorWithClient creates an executor over an existing REST client.
func NewExecutorWithClient(client GuildActions, logger *zap.Logger, opts ...Option) *Executor {
	e := &Executor{
		client: client,
		now:    time.Now,
		logger: logger.Named("discord_executor"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute applies the case's action to the member in one guild.
// The case identifier is embedded in the guild's audit log reason.
func (e *Executor) Execute(ctx context.Context, guildID string, c *types.Case) error {
	guild, err := snowflake.Parse(guildID)
	if err != nil {
		return fmt.Errorf("%w: invalid guild id %q: %w", types.ErrValidation, guildID, err)
	}

	user, err := snowflake.Parse(c.UserID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id %q: %w", types.ErrValidation, c.UserID, err)
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	opts := []rest.RequestOpt{rest.WithCtx(ctx), rest.WithReason(c.AuditReason())}

	switch c.ActionType {
	case enum.ActionTypeGlobalBan:
		err = e.ban(guild, user, opts)
	case enum.ActionTypeGlobalUnban:
		err = e.client.DeleteBan(guild, user, opts...)
	case enum.ActionTypeGlobalKick:
		err = e.client.RemoveMember(guild, user, opts...)
	case enum.ActionTypeGlobalMute:
		err = e.mute(guild, user, c.Duration, opts)
	default:
		return fmt.Errorf("%w: %s is not a global action", types.ErrValidation, c.ActionType)
	}

	if err != nil {
		return fmt.Errorf("failed to apply %s in guild %s: %w", c.ActionType, guildID, err)
	}

	e.logger.Debug("Applied global action",
		zap.String("caseID", c.CaseID),
		zap.String("guildID", guildID),
		zap.String("actionType", c.ActionType.String()))

	return nil
}

func (e *Executor) ban(guild, user snowflake.ID, opts []rest.RequestOpt) error {
	result, err := e.client.BulkBan(guild, discord.BulkBan{
		UserIDs:              []snowflake.ID{user},
		DeleteMessageSeconds: 0,
	}, opts...)
	if err != nil {
		return err
	}

	if !slices.Contains(result.BannedUsers, user) {
		return ErrBanRejected
	}

	return nil
}

func (e *Executor) mute(guild, user snowflake.ID, duration string, opts []rest.RequestOpt) error {
	length, err := MuteLength(duration)
	if err != nil {
		return err
	}

	until := e.now().Add(length)

	_, err = e.client.UpdateMember(guild, user, discord.MemberUpdate{
		CommunicationDisabledUntil: json.NewNullablePtr(until),
	}, opts...)

	return err
}

// MuteLength parses a case duration for a communication timeout, defaulting
// to DefaultMuteDuration and capping at MaxTimeout.
func MuteLength(duration string) (time.Duration, error) {
	if duration == "" {
		return DefaultMuteDuration, nil
	}

	length, err := types.ParseDuration(duration)
	if err != nil {
		return 0, err
	}

	return min(length, MaxTimeout), nil
}
