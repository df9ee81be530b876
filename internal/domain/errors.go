package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups of unknown scenarios or sessions.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks requests that can never succeed as given.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream marks failures of the conversational AI call.
	ErrUpstream = errors.New("upstream failure")
)

// Kinds of missing resources reported by NotFoundError.
const (
	KindScenario = "scenario"
	KindSession  = "session"
)

// NotFoundError reports an unknown scenario or session identifier.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.Kind == KindScenario {
		return fmt.Sprintf("unknown scenario id: %s", e.ID)
	}
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnknownScenario returns the error for a missing scenario id.
func UnknownScenario(id string) error {
	return &NotFoundError{Kind: KindScenario, ID: id}
}

// UnknownSession returns the error for a missing session id.
func UnknownSession(id string) error {
	return &NotFoundError{Kind: KindSession, ID: id}
}
