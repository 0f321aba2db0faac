package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when a job id is not in the document.
	ErrJobNotFound = errors.New("job not found")

	// ErrLastSpace is returned when removing a space would leave the job
	// with none. Every job keeps at least one space.
	ErrLastSpace = errors.New("job must keep at least one space")

	// ErrSpaceNotFound is returned when a space id is not on the job.
	ErrSpaceNotFound = errors.New("space not found")
)

// ValidationError blocks a workflow action locally when a required field
// is missing. No network call is attempted for these.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a missing or invalid field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// TransitionError is returned when a workflow action is attempted from a
// status it does not apply to.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}
