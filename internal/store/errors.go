package store

import (
	"errors"
	"fmt"
)

// CorruptLogError indicates the persisted log cannot be fully decoded.
// A corrupt log is fatal for the whole system: operating on a partial
// projection would silently violate the monotonic-transition invariant,
// so Load never attempts partial recovery.
type CorruptLogError struct {
	// Seq is the sequence number of the first undecodable record, or 0
	// when the failure is not attributable to a single record.
	Seq int64

	// Reason describes why the record could not be decoded.
	Reason string
}

func (e *CorruptLogError) Error() string {
	if e.Seq > 0 {
		return fmt.Sprintf("corrupt event log at seq %d: %s", e.Seq, e.Reason)
	}
	return fmt.Sprintf("corrupt event log: %s", e.Reason)
}

// IsCorruptLog reports whether err is a log-corruption failure.
// Uses errors.As to handle wrapped errors.
func IsCorruptLog(err error) bool {
	var ce *CorruptLogError
	return errors.As(err, &ce)
}
