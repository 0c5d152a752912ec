package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/robalyx/modcase/internal/database/types/enum"
	"github.com/uptrace/bun"
)

const (
	// GlobalScope is the guild ID sentinel for cross-guild cases.
	GlobalScope = "GLOBAL"

	// CasePrefix prefixes identifiers issued in a guild scope.
	CasePrefix = "CASE"
	// GlobalPrefix prefixes identifiers issued in the global scope.
	GlobalPrefix = "GLOBAL"

	// DefaultPoints is the weight of a warning when none is given.
	DefaultPoints = 1

	// DefaultReason is stored for non-punitive actions created without a reason.
	DefaultReason = "No reason provided"
)

// Case is a single recorded moderation action.
// Identifiers are unique within a scope: a guild or the global scope.
type Case struct {
	bun.BaseModel `bun:"table:cases,alias:c" json:"-"`

	ID           int64           `bun:",pk,autoincrement" json:"id"`                        // Insertion sequence used for stable ordering
	CaseID       string          `bun:",notnull,unique:cases_scope_case_id" json:"caseId"`  // Human-readable identifier (CASE-0007)
	GuildID      string          `bun:",notnull,unique:cases_scope_case_id" json:"guildId"` // Guild ID or GlobalScope
	IsGlobal     bool            `bun:",notnull" json:"isGlobal"`                           // Cached GuildID == GlobalScope
	UserID       string          `bun:",notnull" json:"userId"`                             // Subject of the action
	UserTag      string          `bun:",notnull" json:"userTag"`                            // Subject display tag at creation time
	ModeratorID  string          `bun:",notnull" json:"moderatorId"`                        // Actor who created the case
	ModeratorTag string          `bun:",notnull" json:"moderatorTag"`                       // Actor display tag at creation time
	ActionType   enum.ActionType `bun:",type:varchar,notnull" json:"actionType"`            // Kind of moderation action
	Reason       string          `bun:",type:text,notnull" json:"reason"`                   // Why the action was taken
	Evidence     string          `bun:",type:text,nullzero" json:"evidence"`                // Optional supporting evidence
	Duration     string          `bun:",nullzero" json:"duration"`                          // Optional duration such as "1h"
	Points       int             `bun:",notnull" json:"points"`                             // Warning weight
	Status       enum.CaseStatus `bun:",type:varchar,notnull" json:"status"`                // Lifecycle state
	CreatedAt    time.Time       `bun:",notnull" json:"createdAt"`                          // When the case was issued
	UpdatedAt    time.Time       `bun:",notnull" json:"updatedAt"`                          // Bumped on every mutation
	DeletedAt    *time.Time      `bun:",nullzero" json:"deletedAt"`                         // Set while the case is soft-deleted
	DeletedBy    string          `bun:",nullzero" json:"deletedBy"`                         // Who soft-deleted the case
	VoidedAt     *time.Time      `bun:",nullzero" json:"voidedAt"`                          // Set once when the case is voided
	VoidedBy     string          `bun:",nullzero" json:"voidedBy"`                          // Who voided the case
	VoidReason   string          `bun:",type:text,nullzero" json:"voidReason"`              // Why the case was voided
}

// IsActive checks if the case is in the active state.
func (c *Case) IsActive() bool {
	return c.Status == enum.CaseStatusActive
}

// IsDeleted checks if the case is soft-deleted.
func (c *Case) IsDeleted() bool {
	return c.Status == enum.CaseStatusDeleted
}

// IsVoided checks if the case has been voided.
func (c *Case) IsVoided() bool {
	return c.Status == enum.CaseStatusVoided
}

// AuditReason formats the reason string embedded in platform audit logs.
func (c *Case) AuditReason() string {
	return fmt.Sprintf("[%s] %s", c.CaseID, c.Reason)
}

// NewCase holds the caller-supplied data for creating a case.
type NewCase struct {
	GuildID      string
	UserID       string
	UserTag      string
	ModeratorID  string
	ModeratorTag string
	ActionType   enum.ActionType
	Reason       string
	Evidence     string
	Duration     string
	Points       *int // nil means DefaultPoints
}

// Scope returns the counter scope the new case is issued in.
func (n *NewCase) Scope() string {
	if n.ActionType.IsGlobal() || strings.EqualFold(strings.TrimSpace(n.GuildID), GlobalScope) {
		return GlobalScope
	}

	return strings.TrimSpace(n.GuildID)
}

// CaseChanges holds the editable fields of a case. Nil fields are left untouched.
type CaseChanges struct {
	Reason   *string
	Evidence *string
	Points   *int
}

// IsEmpty reports whether no field was supplied.
func (c CaseChanges) IsEmpty() bool {
	return c.Reason == nil && c.Evidence == nil && c.Points == nil
}

// CaseFilter narrows a guild case listing. Zero values mean "any".
type CaseFilter struct {
	Status        enum.CaseStatus
	ActionType    enum.ActionType
	ModeratorID   string
	IncludeVoided bool
	Limit         int
}

// ParseActionType maps input such as "global_ban" to an action type.
func ParseActionType(value string) (enum.ActionType, error) {
	action, err := enum.ActionTypeString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: unknown action type %q", ErrValidation, value)
	}

	return action, nil
}

// ParseCaseStatus maps input such as "deleted" to a case status.
func ParseCaseStatus(value string) (enum.CaseStatus, error) {
	status, err := enum.CaseStatusString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: unknown status %q", ErrValidation, value)
	}

	return status, nil
}

// CaseCounter tracks the last issued sequence number for a scope.
type CaseCounter struct {
	bun.BaseModel `bun:"table:case_counters"`

	GuildID       string `bun:",pk"`
	CurrentNumber int64  `bun:",notnull,default:0"`
}

// FormatCaseID builds the identifier for a sequence number in a scope.
func FormatCaseID(scope string, number int64) string {
	prefix := CasePrefix
	if scope == GlobalScope {
		prefix = GlobalPrefix
	}

	return fmt.Sprintf("%s-%04d", prefix, number)
}

// NormalizeCaseID trims and uppercases a caller-supplied identifier.
func NormalizeCaseID(caseID string) string {
	return strings.ToUpper(strings.TrimSpace(caseID))
}

// ResolveScope determines which scope a caller-supplied identifier lives in.
// GLOBAL- identifiers always resolve to the global scope, everything else to
// the guild the caller is acting in.
func ResolveScope(guildID, caseID string) (string, string) {
	normalized := NormalizeCaseID(caseID)
	if strings.HasPrefix(normalized, GlobalPrefix+"-") {
		return GlobalScope, normalized
	}

	guildID = strings.TrimSpace(guildID)
	if strings.EqualFold(guildID, GlobalScope) {
		return GlobalScope, normalized
	}

	return guildID, normalized
}
