// Package kindle acquires reading-progress snapshots from the Kindle
// service. It is the only component that touches the network; the core
// consumes snapshots through the Source interface and sees every
// transport or auth failure as the single ErrUnavailable outcome.
package kindle

import (
	"context"
	"errors"
)

// ErrUnavailable signals that a snapshot could not be obtained. Callers
// match it with errors.Is to distinguish "couldn't check" from an empty
// snapshot, which means "checked, nothing reported".
var ErrUnavailable = errors.New("kindle snapshot unavailable")

// Observation is one externally observed (book, position) pair. It is
// ephemeral: observations are diffed against derived state and then
// discarded, never persisted.
type Observation struct {
	Asin string `json:"asin"`

	// Position is the current location marker within the book.
	Position int `json:"position"`

	// PercentComplete is the completion percentage, 0-100.
	PercentComplete int `json:"percent_complete"`
}

// Finished reports whether the observation's completion marker indicates
// the book has been read to the end.
func (o Observation) Finished() bool {
	return o.PercentComplete >= 100
}

// Source provides the current snapshot of the whole library. One blocking
// call with a binary outcome: the full observation list, or an error
// wrapping ErrUnavailable. No partial results, no internal retries.
type Source interface {
	FetchSnapshot(ctx context.Context) ([]Observation, error)
}
