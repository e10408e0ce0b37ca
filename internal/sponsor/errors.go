package sponsor

import (
	"errors"
	"fmt"
)

// InvariantError reports an internal-consistency violation in the
// crediting engine. It is never a user-facing condition: the valid
// "no sponsors exist" outcome is reported through Result.Empty, not
// through an error.
type InvariantError struct {
	// Code identifies the violated invariant.
	Code InvariantErrorCode

	// Message is a human-readable description.
	Message string
}

// InvariantErrorCode categorizes invariant violations.
type InvariantErrorCode string

const (
	// ErrCodeAttemptsExhausted indicates the draw-reset-redraw
	// sequence ran out of attempts without resolving to a name list
	// or the empty-store outcome.
	ErrCodeAttemptsExhausted InvariantErrorCode = "ATTEMPTS_EXHAUSTED"
)

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvariantError returns true if err is an InvariantError.
// Uses errors.As to handle wrapped errors.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
