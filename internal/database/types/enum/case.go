package enum

// CaseStatus represents where a case sits in its lifecycle.
// The zero value is not a status and means "any" in filters.
//
//go:generate go tool enumer -type=CaseStatus -trimprefix=CaseStatus -transform=snake -sql -text -json
type CaseStatus int

const (
	// CaseStatusActive is the state every case is created in.
	CaseStatusActive CaseStatus = iota + 1
	// CaseStatusDeleted hides a case from default views until it is restored.
	CaseStatusDeleted
	// CaseStatusVoided is terminal. A voided case never changes status again.
	CaseStatusVoided
)

// IsTerminal reports whether no further transitions are allowed.
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusVoided
}

// ActionType represents the moderation action a case records.
// The zero value is not an action and means "any" in filters.
//
//go:generate go tool enumer -type=ActionType -trimprefix=ActionType -transform=snake -sql -text -json
type ActionType int

const (
	ActionTypeWarn ActionType = iota + 1
	ActionTypeMute
	ActionTypeUnmute
	ActionTypeKick
	ActionTypeBan
	ActionTypeUnban
	ActionTypeTimeout
	ActionTypeInvestigation
	ActionTypeGlobalBan
	ActionTypeGlobalUnban
	ActionTypeGlobalKick
	ActionTypeGlobalMute
)

// IsGlobal reports whether the action is issued in the cross-guild scope.
func (a ActionType) IsGlobal() bool {
	switch a {
	case ActionTypeGlobalBan, ActionTypeGlobalUnban, ActionTypeGlobalKick, ActionTypeGlobalMute:
		return true
	default:
		return false
	}
}

// IsPunitive reports whether the action punishes the member.
// Punitive actions must carry a reason.
func (a ActionType) IsPunitive() bool {
	switch a {
	case ActionTypeWarn, ActionTypeMute, ActionTypeKick, ActionTypeBan, ActionTypeTimeout,
		ActionTypeGlobalBan, ActionTypeGlobalKick, ActionTypeGlobalMute:
		return true
	default:
		return false
	}
}

// IsTimeBounded reports whether the action may carry a duration.
func (a ActionType) IsTimeBounded() bool {
	switch a {
	case ActionTypeMute, ActionTypeTimeout, ActionTypeBan, ActionTypeGlobalBan, ActionTypeGlobalMute:
		return true
	default:
		return false
	}
}

// CaseEventType represents a committed change to a case.
//
//go:generate go tool enumer -type=CaseEventType -trimprefix=CaseEvent -transform=snake -sql -text -json
type CaseEventType int

const (
	CaseEventCreated CaseEventType = iota + 1
	CaseEventEdited
	CaseEventDeleted
	CaseEventRestored
	CaseEventVoided
)
