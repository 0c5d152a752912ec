package discord_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	modcasediscord "github.com/robalyx/modcase/internal/discord"
	"github.com/robalyx/modcase/internal/discord/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var errUnknownMember = errors.New("unknown member")

// fakeActions records the REST calls made by the executor.
type fakeActions struct {
	calls      []string
	banned     bool
	removeErr  error
	lastUpdate discord.MemberUpdate
}

func (f *fakeActions) BulkBan(
	_ snowflake.ID, ban discord.BulkBan, _ ...rest.RequestOpt,
) (*discord.BulkBanResult, error) {
	f.calls = append(f.calls, "bulk_ban")

	result := &discord.BulkBanResult{}
	if f.banned {
		result.BannedUsers = ban.UserIDs
	} else {
		result.FailedUsers = ban.UserIDs
	}

	return result, nil
}

func (f *fakeActions) DeleteBan(_, _ snowflake.ID, _ ...rest.RequestOpt) error {
	f.calls = append(f.calls, "delete_ban")
	return nil
}

func (f *fakeActions) RemoveMember(_, _ snowflake.ID, _ ...rest.RequestOpt) error {
	f.calls = append(f.calls, "remove_member")
	return f.removeErr
}

func (f *fakeActions) UpdateMember(
	_, _ snowflake.ID, update discord.MemberUpdate, _ ...rest.RequestOpt,
) (*discord.Member, error) {
	f.calls = append(f.calls, "update_member")
	f.lastUpdate = update
	return &discord.Member{}, nil
}

func globalCase(action enum.ActionType) *types.Case {
	return &types.Case{
		CaseID:     "GLOBAL-0001",
		GuildID:    types.GlobalScope,
		UserID:     "175928847299117063",
		ActionType: action,
		Reason:     "raid",
		Status:     enum.CaseStatusActive,
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		action   enum.ActionType
		actions  *fakeActions
		wantCall string
		wantErr  error
	}{
		{name: "ban", action: enum.ActionTypeGlobalBan, actions: &fakeActions{banned: true}, wantCall: "bulk_ban"},
		{
			name: "ban rejected", action: enum.ActionTypeGlobalBan, actions: &fakeActions{},
			wantCall: "bulk_ban", wantErr: modcasediscord.ErrBanRejected,
		},
		{name: "unban", action: enum.ActionTypeGlobalUnban, actions: &fakeActions{}, wantCall: "delete_ban"},
		{name: "kick", action: enum.ActionTypeGlobalKick, actions: &fakeActions{}, wantCall: "remove_member"},
		{
			name: "kick fails", action: enum.ActionTypeGlobalKick, actions: &fakeActions{removeErr: errUnknownMember},
			wantCall: "remove_member", wantErr: errUnknownMember,
		},
		{name: "mute", action: enum.ActionTypeGlobalMute, actions: &fakeActions{}, wantCall: "update_member"},
		{name: "local action", action: enum.ActionTypeBan, actions: &fakeActions{}, wantErr: types.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := modcasediscord.NewExecutorWithClient(tt.actions, zaptest.NewLogger(t))

			err := executor.Execute(t.Context(), "81384788765712384", globalCase(tt.action))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			if tt.wantCall != "" {
				assert.Equal(t, []string{tt.wantCall}, tt.actions.calls)
			} else {
				assert.Empty(t, tt.actions.calls)
			}
		})
	}
}

func TestExecuteMuteSetsTimeout(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	executor := modcasediscord.NewExecutorWithClient(actions, zaptest.NewLogger(t))

	c := globalCase(enum.ActionTypeGlobalMute)
	c.Duration = "2h"

	before := time.Now()
	require.NoError(t, executor.Execute(t.Context(), "81384788765712384", c))

	require.NotNil(t, actions.lastUpdate.CommunicationDisabledUntil)

	payload, err := json.Marshal(actions.lastUpdate)
	require.NoError(t, err)

	var body struct {
		Until time.Time `json:"communication_disabled_until"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.WithinDuration(t, before.Add(2*time.Hour), body.Until, time.Minute)
}

func TestExecuteRejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	executor := modcasediscord.NewExecutorWithClient(&fakeActions{}, zaptest.NewLogger(t))

	err := executor.Execute(t.Context(), "not-a-guild", globalCase(enum.ActionTypeGlobalKick))
	require.ErrorIs(t, err, types.ErrValidation)

	c := globalCase(enum.ActionTypeGlobalKick)
	c.UserID = "someone"
	err = executor.Execute(t.Context(), "81384788765712384", c)
	require.ErrorIs(t, err, types.ErrValidation)
}

func TestMuteLength(t *testing.T) {
	t.Parallel()

	length, err := modcasediscord.MuteLength("")
	require.NoError(t, err)
	assert.Equal(t, modcasediscord.DefaultMuteDuration, length)

	length, err = modcasediscord.MuteLength("8w")
	require.NoError(t, err)
	assert.Equal(t, modcasediscord.MaxTimeout, length)

	_, err = modcasediscord.MuteLength("forever")
	require.ErrorIs(t, err, types.ErrValidation)
}

func TestExecuteWaitsForLimiter(t *testing.T) {
	t.Parallel()

	actions := &fakeActions{}
	limiter := rate.New(time.Hour, 0)
	executor := modcasediscord.NewExecutorWithClient(actions, zaptest.NewLogger(t),
		modcasediscord.WithLimiter(limiter))

	require.NoError(t, executor.Execute(t.Context(), "81384788765712384", globalCase(enum.ActionTypeGlobalKick)))

	// The next slot is an hour away so a cancelled caller gives up without calling Discord
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := executor.Execute(ctx, "81384788765712384", globalCase(enum.ActionTypeGlobalKick))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"remove_member"}, actions.calls)
}
