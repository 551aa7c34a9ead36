package workflow

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity does not exist for the caller's
// company. An id from another company, a soft-deleted row, and a genuinely
// absent id are indistinguishable to the caller.
var ErrNotFound = errors.New("not found")

// InvalidTransitionError rejects a status change that is not an edge of the
// entity's transition table.
type InvalidTransitionError struct {
	Entity    EntityKind
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.Current, e.Requested)
}

// ValidationError rejects a malformed payload before any store write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
