package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// NavigationError is returned when a navigation action is not allowed
// from the current step.
type NavigationError struct {
	Action  NavAction
	Current Step
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("action %q is not valid from step %d", e.Action, e.Current)
}

// StepBlockedError is returned when forward navigation is blocked by
// the current step's validation rules.
type StepBlockedError struct {
	Step   Step
	Errors []string
}

func (e *StepBlockedError) Error() string {
	return fmt.Sprintf("step %d is incomplete: %s", e.Step, strings.Join(e.Errors, "; "))
}

// MediaError is a user-correctable media ingestion failure. The message
// is shown to the user verbatim; the offering is left untouched.
type MediaError struct {
	Message string
}

func (e *MediaError) Error() string {
	return e.Message
}
