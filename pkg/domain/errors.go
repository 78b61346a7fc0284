package domain

import (
	"errors"
	"fmt"
)

// ErrSessionComplete is returned when input arrives after the terminal step.
var ErrSessionComplete = errors.New("session complete")

// ErrSessionBusy is returned when input arrives while a typing chain is
// still in flight for the session.
var ErrSessionBusy = errors.New("session busy")

// ErrSessionNotStarted is returned when a step submission arrives before the
// user's start action.
var ErrSessionNotStarted = errors.New("session not started")

// ErrOutOfStep is returned when a submission targets a step that is not the
// session's current one.
var ErrOutOfStep = errors.New("input does not match current step")

// ErrNoScript is returned when the dialog is driven without a loaded script.
var ErrNoScript = errors.New("no dialog script configured")

// ValidationError is a recoverable user error: it blocks a transition and
// marks the offending field, never abandons the session.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
