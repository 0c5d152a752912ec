package models_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/modcase/internal/database/dbtest"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var errAbort = errors.New("abort")

func TestCounterModelNext(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	counter := client.Model().Counter()
	ctx := t.Context()

	current, err := counter.Current(ctx, "G1")
	require.NoError(t, err)
	assert.Zero(t, current)

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Next(ctx, client.DB(), "G1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Scopes never share a counter row.
	got, err := counter.Next(ctx, client.DB(), types.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	// A rolled back transaction leaves the counter where it was.
	err = client.DB().RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		n, err := counter.Next(ctx, tx, "G1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	current, err = counter.Current(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), current)
}

func TestEditModelHistory(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	edits := client.Model().Edit()
	ctx := t.Context()
	now := time.Now().UTC()

	require.NoError(t, edits.Record(ctx, client.DB(), nil))
	require.NoError(t, edits.Record(ctx, client.DB(), []*types.CaseEdit{
		{GuildID: "G1", CaseID: "CASE-0001", EditorID: "M1", FieldChanged: "reason",
			OldValue: "a", NewValue: "b", EditReason: "typo", CreatedAt: now},
		{GuildID: "G1", CaseID: "CASE-0001", EditorID: "M1", FieldChanged: "points",
			OldValue: "1", NewValue: "2", EditReason: "typo", CreatedAt: now},
		{GuildID: "G2", CaseID: "CASE-0001", EditorID: "M1", FieldChanged: "reason",
			OldValue: "x", NewValue: "y", EditReason: "other guild", CreatedAt: now},
	}))

	history, err := edits.History(ctx, "G1", "CASE-0001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "points", history[0].FieldChanged)
	assert.Equal(t, "reason", history[1].FieldChanged)
}

func TestCaseStatsModel(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	stats := client.Model().Stats()
	ctx := t.Context()
	stamp := time.Now().UTC()

	seedCase(t, client, &types.Case{CaseID: "CASE-0001", GuildID: "G1", UserID: "U1", Points: 2})
	seedCase(t, client, &types.Case{CaseID: "CASE-0002", GuildID: "G1", UserID: "U1", Points: 3})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0003", GuildID: "G1", UserID: "U1", Points: 7,
		Status: enum.CaseStatusDeleted, DeletedAt: &stamp, DeletedBy: "M1",
	})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0004", GuildID: "G1", UserID: "U1", Points: 11,
		Status: enum.CaseStatusVoided, VoidedAt: &stamp, VoidedBy: "M1", VoidReason: "bad",
	})
	seedCase(t, client, &types.Case{CaseID: "CASE-0005", GuildID: "G1", UserID: "U2", ActionType: enum.ActionTypeTimeout})
	seedCase(t, client, &types.Case{
		CaseID: "CASE-0006", GuildID: "G1", UserID: "U3", ActionType: enum.ActionTypeBan, ModeratorID: "M2",
	})
	seedCase(t, client, &types.Case{CaseID: "CASE-0007", GuildID: "G1", UserID: "U3", ActionType: enum.ActionTypeKick})

	points, err := stats.UserWarnPoints(ctx, "G1", "U1")
	require.NoError(t, err)
	assert.Equal(t, 5, points)

	none, err := stats.UserWarnPoints(ctx, "G1", "U404")
	require.NoError(t, err)
	assert.Zero(t, none)

	guild, err := stats.GuildStats(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, types.GuildStats{
		Total: 6, Warns: 3, Mutes: 1, Kicks: 1, Bans: 1, Active: 5, Deleted: 1,
	}, *guild)

	empty, err := stats.GuildStats(ctx, "G404")
	require.NoError(t, err)
	assert.Equal(t, types.GuildStats{}, *empty)

	moderators, err := stats.ModeratorStats(ctx, "G1", stamp.Add(-time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, []types.ModeratorStats{
		{ModeratorID: "M1", CaseCount: 5},
		{ModeratorID: "M2", CaseCount: 1},
	}, moderators)
}

func TestPropagationModel(t *testing.T) {
	t.Parallel()

	client := dbtest.NewClient(t)
	model := client.Model().Propagation()
	ctx := t.Context()
	started := time.Now().UTC()

	require.NoError(t, model.Log(ctx, &types.PropagationLog{
		BatchID: "batch-1", CaseID: "GLOBAL-0001", ActionType: enum.ActionTypeGlobalBan,
		RequestedBy: "M1", SucceededCount: 2, FailedCount: 1, FailedGuildIDs: []string{"G3"},
		StartedAt: started, FinishedAt: started.Add(time.Second),
	}))

	logs, err := model.ListByCase(ctx, "GLOBAL-0001")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, []string{"G3"}, logs[0].FailedGuildIDs)
	assert.Equal(t, 2, logs[0].SucceededCount)
}
