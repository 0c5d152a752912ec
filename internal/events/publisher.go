package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/robalyx/modcase/internal/database/types"
	"go.uber.org/zap"
)

// MaxStreamLength caps the stream so old events are trimmed by Redis.
const MaxStreamLength = 10000

// ErrMissingPayload is returned when a stream entry was not written by Publish.
var ErrMissingPayload = errors.New("stream entry has no payload")

// Publisher appends committed case events to a Redis stream so other
// services can follow the moderation log.
type Publisher struct {
	client rueidis.Client
	stream string
	logger *zap.Logger
}

// NewPublisher creates a publisher writing to the given stream key.
func NewPublisher(client rueidis.Client, stream string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger.Named("events"),
	}
}

// Publish appends the event to the stream.
func (p *Publisher) Publish(ctx context.Context, event types.CaseEvent) error {
	payload, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal case event: %w", err)
	}

	cmd := p.client.B().Xadd().Key(p.stream).
		Maxlen().Almost().Threshold(strconv.Itoa(MaxStreamLength)).
		Id("*").
		FieldValue().
		FieldValue("type", event.Type.String()).
		FieldValue("case_id", event.CaseID).
		FieldValue("guild_id", event.GuildID).
		FieldValue("payload", string(payload)).
		Build()

	id, err := p.client.Do(ctx, cmd).ToString()
	if err != nil {
		return fmt.Errorf("failed to append case event to %s: %w", p.stream, err)
	}

	p.logger.Debug("Published case event",
		zap.String("streamID", id),
		zap.String("type", event.Type.String()),
		zap.String("caseID", event.CaseID),
		zap.String("guildID", event.GuildID))

	return nil
}

// Recent returns up to count events, newest first.
func (p *Publisher) Recent(ctx context.Context, count int64) ([]types.CaseEvent, error) {
	cmd := p.client.B().Xrevrange().Key(p.stream).End("+").Start("-").Count(count).Build()

	entries, err := p.client.Do(ctx, cmd).AsXRange()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.stream, err)
	}

	result := make([]types.CaseEvent, 0, len(entries))
	for _, entry := range entries {
		payload, ok := entry.FieldValues["payload"]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayload, entry.ID)
		}

		var event types.CaseEvent
		if err := sonic.UnmarshalString(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", entry.ID, err)
		}

		result = append(result, event)
	}

	return result, nil
}
