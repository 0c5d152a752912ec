package events_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/robalyx/modcase/internal/database/dbtest"
	"github.com/robalyx/modcase/internal/database/types"
	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/robalyx/modcase/internal/events"
	"github.com/robalyx/modcase/internal/redis"
	"github.com/robalyx/modcase/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testStream = "modcase:events"

func setupPublisher(t *testing.T) (*events.Publisher, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{Host: mr.Host(), Port: port}, zaptest.NewLogger(t))
	t.Cleanup(manager.Close)

	client, err := manager.GetClient(redis.EventsDBIndex)
	require.NoError(t, err)

	return events.NewPublisher(client, testStream, zaptest.NewLogger(t)), mr
}

func TestPublishAndRecent(t *testing.T) {
	t.Parallel()

	publisher, mr := setupPublisher(t)
	ctx := t.Context()
	now := time.Now().UTC().Truncate(time.Millisecond)

	first := types.CaseEvent{
		Type: enum.CaseEventCreated, CaseID: "CASE-0001", GuildID: "G1", UserID: "U1",
		ActorID: "M1", ActionType: enum.ActionTypeWarn, Status: enum.CaseStatusActive, OccurredAt: now,
	}
	second := first
	second.Type = enum.CaseEventDeleted
	second.Status = enum.CaseStatusDeleted

	require.NoError(t, publisher.Publish(ctx, first))
	require.NoError(t, publisher.Publish(ctx, second))

	entries, err := mr.Stream(testStream)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{
		"type", "created", "case_id", "CASE-0001", "guild_id", "G1",
	}, entries[0].Values[:6])

	recent, err := publisher.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, enum.CaseEventDeleted, recent[0].Type)
	assert.Equal(t, enum.CaseStatusDeleted, recent[0].Status)
	assert.Equal(t, enum.CaseEventCreated, recent[1].Type)
	assert.True(t, now.Equal(recent[1].OccurredAt))

	limited, err := publisher.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPublisherAsEventSink(t *testing.T) {
	t.Parallel()

	publisher, _ := setupPublisher(t)
	client := dbtest.NewClient(t)
	cases := client.Service().Case()
	cases.SetEventSink(publisher)
	ctx := t.Context()

	created, err := cases.Create(ctx, &types.NewCase{
		GuildID: "G1", UserID: "U1", ModeratorID: "M1", ActionType: enum.ActionTypeWarn, Reason: "spam",
	})
	require.NoError(t, err)

	_, err = cases.SoftDelete(ctx, "G1", created.CaseID, "M2")
	require.NoError(t, err)

	recent, err := publisher.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, enum.CaseEventDeleted, recent[0].Type)
	assert.Equal(t, "M2", recent[0].ActorID)
	assert.Equal(t, enum.CaseEventCreated, recent[1].Type)
	assert.Equal(t, created.CaseID, recent[1].CaseID)
}

func TestRecentRejectsForeignEntries(t *testing.T) {
	t.Parallel()

	publisher, mr := setupPublisher(t)

	_, err := mr.XAdd(testStream, "*", []string{"type", "created"})
	require.NoError(t, err)

	_, err = publisher.Recent(t.Context(), 10)
	require.ErrorIs(t, err, events.ErrMissingPayload)
}
