package engine

import (
	"errors"
	"fmt"
)

// TransitionErrorCode categorizes rejected event registrations.
type TransitionErrorCode string

const (
	// ErrCodeUnknownAsin indicates the event references a book the
	// catalog does not know.
	ErrCodeUnknownAsin TransitionErrorCode = "UNKNOWN_ASIN"

	// ErrCodeAlreadyTracked indicates an add for a book that already has
	// log history.
	ErrCodeAlreadyTracked TransitionErrorCode = "ALREADY_TRACKED"

	// ErrCodeAlreadyReading indicates a start for a book already in
	// progress.
	ErrCodeAlreadyReading TransitionErrorCode = "ALREADY_READING"

	// ErrCodeAlreadyFinished indicates a transition on a finished book.
	// Finished is terminal.
	ErrCodeAlreadyFinished TransitionErrorCode = "ALREADY_FINISHED"

	// ErrCodeNotReading indicates a position advance for a book that is
	// not in progress.
	ErrCodeNotReading TransitionErrorCode = "NOT_READING"

	// ErrCodeInvalidPosition indicates a negative position or
	// non-positive advance.
	ErrCodeInvalidPosition TransitionErrorCode = "INVALID_POSITION"
)

// InvalidTransitionError reports a registration that is inconsistent with
// the current projected state, pending effects included. The registration
// is rejected as a whole and the pending buffer is left unchanged.
type InvalidTransitionError struct {
	Code    TransitionErrorCode
	Asin    string
	Message string
}

func (e *InvalidTransitionError) Error() string {
	if e.Asin != "" {
		return fmt.Sprintf("%s: %s (asin=%s)", e.Code, e.Message, e.Asin)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidTransition reports whether err is a rejected registration.
// Uses errors.As to handle wrapped errors.
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}

func newTransitionError(code TransitionErrorCode, asin, message string) *InvalidTransitionError {
	return &InvalidTransitionError{Code: code, Asin: asin, Message: message}
}

// CommitError reports a failed append of the pending buffer. The buffer
// is preserved in full so the caller can retry; partial commits never
// happen.
type CommitError struct {
	// Pending is the number of events still buffered.
	Pending int
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit of %d pending events failed: %v", e.Pending, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
