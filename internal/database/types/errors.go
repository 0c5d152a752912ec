package types

import "errors"

var (
	// ErrCaseNotFound is returned when a referenced case does not exist.
	ErrCaseNotFound = errors.New("case not found")
	// ErrCaseExists is returned when inserting a case whose identifier is taken.
	ErrCaseExists = errors.New("case already exists")
	// ErrInvalidTransition is returned when a state machine guard rejects a call.
	ErrInvalidTransition = errors.New("invalid case transition")
	// ErrValidation is returned when required data is missing or malformed.
	ErrValidation = errors.New("invalid case data")
	// ErrStorage is returned when the underlying store fails.
	ErrStorage = errors.New("case storage failure")
	// ErrCaseVoided is returned when standard views are asked for a voided case's history.
	ErrCaseVoided = errors.New("case is voided")
)
