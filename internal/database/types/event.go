package types

import (
	"time"

	"github.com/robalyx/modcase/internal/database/types/enum"
)

// CaseEvent describes a change to a case after it has been committed.
type CaseEvent struct {
	Type       enum.CaseEventType `json:"type"`
	CaseID     string             `json:"caseId"`
	GuildID    string             `json:"guildId"`
	UserID     string             `json:"userId"`
	ActorID    string             `json:"actorId"`
	ActionType enum.ActionType    `json:"actionType"`
	Status     enum.CaseStatus    `json:"status"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// NewCaseEvent builds an event for a case in its post-commit state.
func NewCaseEvent(eventType enum.CaseEventType, c *Case, actorID string) CaseEvent {
	return CaseEvent{
		Type:       eventType,
		CaseID:     c.CaseID,
		GuildID:    c.GuildID,
		UserID:     c.UserID,
		ActorID:    actorID,
		ActionType: c.ActionType,
		Status:     c.Status,
		OccurredAt: c.UpdatedAt,
	}
}
