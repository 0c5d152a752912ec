package types_test

import (
	"testing"
	"time"

	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCaseID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CASE-0007", types.FormatCaseID("123", 7))
	assert.Equal(t, "GLOBAL-0003", types.FormatCaseID(types.GlobalScope, 3))
	assert.Equal(t, "CASE-12345", types.FormatCaseID("123", 12345))
}

func TestResolveScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		guildID   string
		caseID    string
		wantScope string
		wantID    string
	}{
		{name: "guild case", guildID: "G1", caseID: "case-0007", wantScope: "G1", wantID: "CASE-0007"},
		{name: "global prefix from a guild", guildID: "G1", caseID: " global-0003", wantScope: types.GlobalScope, wantID: "GLOBAL-0003"},
		{name: "global guild", guildID: "global", caseID: "CASE-0001", wantScope: types.GlobalScope, wantID: "CASE-0001"},
		{name: "no guild", guildID: "", caseID: "CASE-0001", wantScope: "", wantID: "CASE-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			scope, id := types.ResolveScope(tt.guildID, tt.caseID)
			assert.Equal(t, tt.wantScope, scope)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestNewCaseScope(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "G1", (&types.NewCase{GuildID: " G1 ", ActionType: enum.ActionTypeWarn}).Scope())
	assert.Equal(t, types.GlobalScope, (&types.NewCase{GuildID: "G1", ActionType: enum.ActionTypeGlobalKick}).Scope())
	assert.Equal(t, types.GlobalScope, (&types.NewCase{GuildID: "GLOBAL", ActionType: enum.ActionTypeWarn}).Scope())
}

func TestAuditReason(t *testing.T) {
	t.Parallel()

	c := &types.Case{CaseID: "GLOBAL-0001", Reason: "raid"}
	assert.Equal(t, "[GLOBAL-0001] raid", c.AuditReason())
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30m", want: 30 * time.Minute},
		{input: "1h", want: time.Hour},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "2w", want: 14 * 24 * time.Hour},
		{input: "1d12h", want: 36 * time.Hour},
		{input: " 1H ", want: time.Hour},
		{input: "", wantErr: true},
		{input: "10", wantErr: true},
		{input: "h", wantErr: true},
		{input: "5y", wantErr: true},
		{input: "0m", wantErr: true},
		{input: "40000w", wantErr: true},
		{input: "9223372036854775807s", wantErr: true},
		{input: "-1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseDuration(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, types.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionTypeClassification(t *testing.T) {
	t.Parallel()

	for _, action := range enum.ActionTypeValues() {
		assert.True(t, action.IsAActionType(), action)
	}

	assert.False(t, enum.ActionType(0).IsAActionType())
	assert.True(t, enum.ActionTypeGlobalMute.IsGlobal())
	assert.False(t, enum.ActionTypeMute.IsGlobal())
	assert.False(t, enum.ActionTypeInvestigation.IsPunitive())
	assert.True(t, enum.CaseStatusVoided.IsTerminal())
	assert.False(t, enum.CaseStatusDeleted.IsTerminal())
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	action, err := types.ParseActionType(" global_ban ")
	require.NoError(t, err)
	assert.Equal(t, enum.ActionTypeGlobalBan, action)
	assert.Equal(t, "global_ban", action.String())

	status, err := types.ParseCaseStatus("Deleted")
	require.NoError(t, err)
	assert.Equal(t, enum.CaseStatusDeleted, status)

	_, err = types.ParseActionType("smite")
	require.ErrorIs(t, err, types.ErrValidation)

	_, err = types.ParseCaseStatus("archived")
	require.ErrorIs(t, err, types.ErrValidation)

	out, err := enum.CaseEventRestored.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"restored"`, string(out))
}
