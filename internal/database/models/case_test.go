package models_test

import (
	"testing"
	"time"

	"github.com/robalyx/modcase/internal/database"
	"github.com/robalyx/modcase/internal/database/dbtest"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCase inserts a case directly, bypassing the lifecycle service.
func seedCase(t *testing.T, client database.Client, c *types.Case) *types.Case {
	t.Helper()

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = c.CreatedAt
	if c.Status == 0 {
		c.Status = enum.CaseStatusActive
	}
	if c.ActionType == 0 {
		c.ActionType = enum.ActionTypeWarn
	}
	if c.ModeratorID == "" {
		c.ModeratorID = "M1"
	}
	c.Reason = "seeded"
	c.UserTag = "user#0001"
	c.ModeratorTag = "mod#0001"

	require.NoError(t, client.Model().Case().Put(t.Context(), client.DB(), c))

	return c
}

func TestCaseModelPutAndGet(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	model := client.Model().Case()
	ctx := t.Context()

	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G1", UserID: "U1"})
	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G2", UserID: "U1"})

	got, err := model.Get(ctx, "G1", "CASE-0001")
	require.NoError(t, err)
	assert.Equal(t, "G1", got.GuildID)
	assert.Equal(t, enum.CaseStatusActive, got.Status)
	assert.Nil(t, got.DeletedAt)

	_, err = model.Get(ctx, "G3", "CASE-0001")
	require.ErrorIs(t, err, types.ErrCaseNotFound)

	err = model.Put(ctx, client.DB(), &types.Case{
		CaseID: "CASE-0001", GuildID: "G1", UserID: "U2", ModeratorID: "M1",
		ActionType: enum.ActionTypeWarn, Status: enum.CaseStatusActive, Reason: "dup",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, types.ErrCaseExists)
	require.ErrorIs(t, err, types.ErrStorage)
}

func TestCaseModelStoresEnumsAsText(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	ctx := t.Context()

	seedCase(t, client, &types.Case{
		CaseID: "GLOBAL-0001", GuildID: types.GlobalScope, UserID: "U1", ActionType: enum.ActionTypeGlobalBan,
	})

	var row struct {
		ActionType string `bun:"action_type"`
		Status     string `bun:"status"`
	}

	err := client.DB().NewRaw("SELECT action_type, status FROM cases WHERE case_id = ?", "GLOBAL-0001").
		Scan(ctx, &row)
	require.NoError(t, err)
	assert.Equal(t, "global_ban", row.ActionType)
	assert.Equal(t, "active", row.Status)

	got, err := client.Model().Case().Get(ctx, types.GlobalScope, "GLOBAL-0001")
	require.NoError(t, err)
	assert.Equal(t, enum.ActionTypeGlobalBan, got.ActionType)
}

func TestCaseModelUpdate(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	model := client.Model().Case()
	ctx := t.Context()

	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G1", UserID: "U1"})

	t.Run("rejects identity columns", func(t *testing.T) {
		t.Parallel()

		err := model.Update(ctx, client.DB(), "G1", "CASE-0001", enum.CaseStatusActive,
			map[string]any{"user_id": "U9"})
		require.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("stale expected status", func(t *testing.T) {
		t.Parallel()

		err := model.Update(ctx, client.DB(), "G1", "CASE-0001", enum.CaseStatusDeleted,
			map[string]any{"status": enum.CaseStatusActive})
		require.ErrorIs(t, err, types.ErrInvalidTransition)
	})

	t.Run("applies and bumps updated_at", func(t *testing.T) {
		t.Parallel()

		before, err := model.Get(ctx, "G1", "CASE-0001")
		require.NoError(t, err)

		err = model.Update(ctx, client.DB(), "G1", "CASE-0001", enum.CaseStatusActive,
			map[string]any{"evidence": "https://example.com/log.png"})
		require.NoError(t, err)

		after, err := model.Get(ctx, "G1", "CASE-0001")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/log.png", after.Evidence)
		assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
	})
}

func TestCaseModelListings(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	model := client.Model().Case()
	ctx := t.Context()
	base := time.Now().UTC().Add(-time.Hour)
	voidedAt := base

	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G1", UserID: "U1", CreatedAt: base})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0002", GuildID: "G1", UserID: "U1", CreatedAt: base.Add(time.Minute),
		Status: enum.CaseStatusDeleted, DeletedAt: &voidedAt, DeletedBy: "M2",
	})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0003", GuildID: "G1", UserID: "U1", CreatedAt: base.Add(2 * time.Minute),
		Status: enum.CaseStatusVoided, VoidedAt: &voidedAt, VoidedBy: "M2", VoidReason: "bad",
	})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0004", GuildID: "G1", UserID: "U2", CreatedAt: base.Add(3 * time.Minute),
		ActionType: enum.ActionTypeBan, ModeratorID: "M2",
	})
	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G2", UserID: "U1", CreatedAt: base})

	caseIDs := func(cases []*types.Case) []string {
		ids := make([]string, 0, len(cases))
		for _, c := range cases {
			ids = append(ids, c.CaseID)
		}
		return ids
	}

	active, err := model.ListByUser(ctx, "G1", "U1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"CASE-0001"}, caseIDs(active))

	withDeleted, err := model.ListByUser(ctx, "G1", "U1", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"CASE-0002", "CASE-0001"}, caseIDs(withDeleted))

	deleted, err := model.ListDeletedByUser(ctx, "G1", "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"CASE-0002"}, caseIDs(deleted))

	tests := []struct {
		name   string
		filter types.CaseFilter
		want   []string
	}{
		{name: "default", filter: types.CaseFilter{}, want: []string{"CASE-0004", "CASE-0002", "CASE-0001"}},
		{
			name:   "include voided",
			filter: types.CaseFilter{IncludeVoided: true},
			want:   []string{"CASE-0004", "CASE-0003", "CASE-0002", "CASE-0001"},
		},
		{name: "status", filter: types.CaseFilter{Status: enum.CaseStatusDeleted}, want: []string{"CASE-0002"}},
		{name: "action", filter: types.CaseFilter{ActionType: enum.ActionTypeBan}, want: []string{"CASE-0004"}},
		{name: "moderator", filter: types.CaseFilter{ModeratorID: "M1"}, want: []string{"CASE-0002", "CASE-0001"}},
		{name: "limit", filter: types.CaseFilter{Limit: 1}, want: []string{"CASE-0004"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases, err := model.ListByGuild(ctx, "G1", tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, caseIDs(cases))
		})
	}

	byModerator, err := model.ListByModerator(ctx, "M1", 0)
	require.NoError(t, err)
	assert.Len(t, byModerator, 3) // G1 CASE-0001, CASE-0002 and G2 CASE-0001
}
