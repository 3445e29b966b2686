package session

import (
	"errors"
	"fmt"
)

// ValidationKind identifies why a session could not be built.
type ValidationKind string

const (
	NoDrillsSelected ValidationKind = "no_drills_selected"
	InvalidDate      ValidationKind = "invalid_date"
)

// ErrNoDrillsSelected matches a NoDrillsSelected ValidationError via errors.Is.
var ErrNoDrillsSelected = errors.New("select at least one drill to log a session")

// ErrInvalidDate matches an InvalidDate ValidationError via errors.Is.
var ErrInvalidDate = errors.New("session date must be YYYY-MM-DD")

// ValidationError is returned by the builder for input the user can fix.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	msg := e.sentinel().Error()
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Kind {
	case NoDrillsSelected:
		return ErrNoDrillsSelected
	case InvalidDate:
		return ErrInvalidDate
	default:
		return errors.New(string(e.Kind))
	}
}
