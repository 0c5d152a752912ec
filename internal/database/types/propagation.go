package types

import (
	"time"

	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// PropagationLog records one cross-guild propagation run.
type PropagationLog struct {
	bun.BaseModel `bun:"table:propagation_logs,alias:pl" json:"-"`

	ID             int64           `bun:",pk,autoincrement" json:"id"`
	BatchID        string          `bun:",notnull,unique" json:"batchId"`
	CaseID         string          `bun:",notnull" json:"caseId"`
	ActionType     enum.ActionType `bun:",type:varchar,notnull" json:"actionType"`
	RequestedBy    string          `bun:",notnull" json:"requestedBy"`
	SucceededCount int             `bun:",notnull" json:"succeededCount"`
	FailedCount    int             `bun:",notnull" json:"failedCount"`
	FailedGuildIDs []string        `bun:"failed_guild_ids,type:text" json:"failedGuildIds"`
	StartedAt      time.Time       `bun:",notnull" json:"startedAt"`
	FinishedAt     time.Time       `bun:",notnull" json:"finishedAt"`
}

// PropagationResult collects the per-guild outcome of a propagation run.
type PropagationResult struct {
	BatchID   string            `json:"batchId"`
	CaseID    string            `json:"caseId"`
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}
