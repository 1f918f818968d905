// Package engine implements the reconciliation manager, the orchestrator
// of one synchronization cycle.
//
// A cycle is strictly sequential:
//
//  1. Load the persisted log and fold it into the baseline state.
//  2. Fetch a fresh observation snapshot from the kindle source.
//  3. Diff the snapshot against the baseline, buffering detected events.
//  4. Accept manually registered events, validated against the projected
//     state including pending effects.
//  5. Commit the pending buffer to the store in one atomic append.
//
// Detection is deliberately conservative: it emits AddEvent for catalog
// books with no log history and SetFinishedEvent for in-progress books
// whose completion marker reads 100%. It never emits SetReadingEvent -
// starting a book is a user intent signal the remote snapshot cannot
// reliably infer, so starting is always a manual declaration. Position
// drift alone produces no events.
//
// The manager owns the pending buffer; ownership of buffered events
// transfers to the store on a successful commit. A failed commit leaves
// the buffer intact for retry.
//
// The manager is single-threaded by design. No locking: the process model
// is load → detect → register → commit → exit, with one writer.
package engine
