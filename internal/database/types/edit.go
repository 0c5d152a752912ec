package types

import (
	"time"

	"github.com/uptrace/bun"
)

// CaseEdit is one immutable record of a single field change on a case.
type CaseEdit struct {
	bun.BaseModel `bun:"table:case_edits,alias:e" json:"-"`

	ID           int64     `bun:",pk,autoincrement" json:"id"`
	GuildID      string    `bun:",notnull" json:"guildId"`      // Scope of the edited case
	CaseID       string    `bun:",notnull" json:"caseId"`       // Edited case identifier
	EditorID     string    `bun:",notnull" json:"editorId"`     // Who made the change
	EditorTag    string    `bun:",notnull" json:"editorTag"`    // Editor display tag at edit time
	FieldChanged string    `bun:",notnull" json:"fieldChanged"` // Column that changed
	OldValue     string    `bun:",type:text" json:"oldValue"`
	NewValue     string    `bun:",type:text" json:"newValue"`
	EditReason   string    `bun:",type:text,notnull" json:"editReason"` // Justification for the edit
	CreatedAt    time.Time `bun:",notnull" json:"createdAt"`
}

// Actor identifies who performed a change.
type Actor struct {
	ID  string
	Tag string
}
