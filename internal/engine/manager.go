package engine

import (
	"context"
	"fmt"

	"github.com/msuozzo/aduro/internal/event"
	"github.com/msuozzo/aduro/internal/kindle"
	"github.com/msuozzo/aduro/internal/library"
	"github.com/msuozzo/aduro/internal/projection"
)

// EventLog is the narrow slice of the store the manager needs.
type EventLog interface {
	Load(ctx context.Context) ([]event.Event, error)
	Append(ctx context.Context, events []event.Event) error
}

// Manager reconciles observed reading progress against recorded state and
// buffers the resulting events until commit.
type Manager struct {
	log     EventLog
	source  kindle.Source
	catalog *library.Catalog

	baseline projection.State
	pending  []event.Event
}

// New creates a manager over the given log, snapshot source, and catalog.
func New(log EventLog, source kindle.Source, catalog *library.Catalog) *Manager {
	return &Manager{
		log:     log,
		source:  source,
		catalog: catalog,
	}
}

// DetectEvents fetches a fresh snapshot and diffs it against the current
// projected state, returning the newly generated events in snapshot order
// and buffering them as pending.
//
// Outcomes:
//   - snapshot fetch failed: error wrapping kindle.ErrUnavailable, so the
//     caller can tell "couldn't check" apart from "nothing changed"
//   - nothing changed: empty slice, nil error
//   - changes: the generated events only, never the full state
//
// Detection emits AddEvent for catalog books with no tracked state and
// SetFinishedEvent for in-progress books observed at 100%. It never emits
// SetReadingEvent, and books already finished are skipped even if still
// reported finished remotely.
//
// Observations for asins the catalog does not know are rejected with
// *InvalidTransitionError rather than silently dropped.
func (m *Manager) DetectEvents(ctx context.Context) ([]event.Event, error) {
	if err := m.reloadBaseline(ctx); err != nil {
		return nil, err
	}

	observations, err := m.source.FetchSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect events: %w", err)
	}

	// Diff against the projection including already-pending effects so a
	// repeated detect within one cycle cannot emit duplicates.
	state := m.projected()

	detected := []event.Event{}
	for _, obs := range observations {
		if !m.catalog.Contains(obs.Asin) {
			return nil, newTransitionError(ErrCodeUnknownAsin, obs.Asin, "observed book is not in the catalog")
		}

		bs, tracked := state[obs.Asin]
		if !tracked {
			ev := event.AddEvent{Asin: obs.Asin}
			projection.Apply(state, ev)
			detected = append(detected, ev)
			continue
		}

		switch bs.Status {
		case projection.StatusReading:
			if obs.Finished() {
				ev := event.SetFinishedEvent{Asin: obs.Asin}
				projection.Apply(state, ev)
				detected = append(detected, ev)
			}
		case projection.StatusFinished:
			// Already terminal; a remote snapshot still reporting the
			// book finished must not produce a duplicate event.
		case projection.StatusUnread:
			// Starting is a manual declaration; nothing to infer here.
		}
	}

	m.pending = append(m.pending, detected...)
	return detected, nil
}

// RegisterEvents validates caller-declared events against the projected
// state including pending effects and appends them to the pending buffer.
//
// The batch is atomic: the first invalid event rejects the whole call
// with *InvalidTransitionError and the buffer is left unchanged. Events
// within the batch see the effects of earlier events in the same batch.
func (m *Manager) RegisterEvents(ctx context.Context, events ...event.Event) error {
	if err := m.ensureBaseline(ctx); err != nil {
		return err
	}

	state := m.projected()
	for _, ev := range events {
		if err := validate(m.catalog, state, ev); err != nil {
			return err
		}
		projection.Apply(state, ev)
	}

	m.pending = append(m.pending, events...)
	return nil
}

// CommitEvents appends the full pending buffer to the log in accumulated
// order and clears it. All-or-nothing: on failure the buffer is preserved
// intact and the error is a *CommitError for retry.
func (m *Manager) CommitEvents(ctx context.Context) error {
	if len(m.pending) == 0 {
		return nil
	}

	if err := m.log.Append(ctx, m.pending); err != nil {
		return &CommitError{Pending: len(m.pending), Err: err}
	}

	// Ownership of the committed events transfers to the store; fold
	// them into the baseline rather than re-reading the whole log.
	for _, ev := range m.pending {
		projection.Apply(m.baseline, ev)
	}
	m.pending = nil
	return nil
}

// Books returns the known catalog, sorted for display.
func (m *Manager) Books() []library.Book {
	return m.catalog.Books()
}

// Progress returns the current projected state including pending,
// uncommitted effects, so a manual-entry UI shows accurate status before
// the user registers another event.
func (m *Manager) Progress(ctx context.Context) (projection.State, error) {
	if err := m.ensureBaseline(ctx); err != nil {
		return nil, err
	}
	return m.projected(), nil
}

// Pending returns a copy of the uncommitted event buffer.
func (m *Manager) Pending() []event.Event {
	out := make([]event.Event, len(m.pending))
	copy(out, m.pending)
	return out
}

// reloadBaseline rebuilds the baseline from the persisted log.
func (m *Manager) reloadBaseline(ctx context.Context) error {
	events, err := m.log.Load(ctx)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	m.baseline = projection.Fold(events)
	return nil
}

// ensureBaseline loads the baseline once; later calls reuse it.
func (m *Manager) ensureBaseline(ctx context.Context) error {
	if m.baseline != nil {
		return nil
	}
	return m.reloadBaseline(ctx)
}

// projected returns baseline state with pending effects applied, on a
// copy the caller may mutate freely.
func (m *Manager) projected() projection.State {
	state := m.baseline.Clone()
	for _, ev := range m.pending {
		projection.Apply(state, ev)
	}
	return state
}

// validate checks one event against catalog membership and the monotonic
// transition rules, given the state the event would apply to.
func validate(catalog *library.Catalog, state projection.State, ev event.Event) error {
	asin := ev.ASIN()
	if !catalog.Contains(asin) {
		return newTransitionError(ErrCodeUnknownAsin, asin, "event references a book not in the catalog")
	}

	bs, tracked := state[asin]

	switch e := ev.(type) {
	case event.AddEvent:
		if tracked {
			return newTransitionError(ErrCodeAlreadyTracked, asin, "book already has tracked state")
		}

	case event.SetReadingEvent:
		if e.Position < 0 {
			return newTransitionError(ErrCodeInvalidPosition, asin, fmt.Sprintf("initial position %d is negative", e.Position))
		}
		if tracked && bs.Status == projection.StatusFinished {
			return newTransitionError(ErrCodeAlreadyFinished, asin, "cannot restart a finished book")
		}
		if tracked && bs.Status == projection.StatusReading {
			return newTransitionError(ErrCodeAlreadyReading, asin, "book is already being read")
		}

	case event.ReadEvent:
		if e.Delta <= 0 {
			return newTransitionError(ErrCodeInvalidPosition, asin, fmt.Sprintf("advance of %d positions is not positive", e.Delta))
		}
		if tracked && bs.Status == projection.StatusFinished {
			return newTransitionError(ErrCodeAlreadyFinished, asin, "cannot advance a finished book")
		}
		if !tracked || bs.Status != projection.StatusReading {
			return newTransitionError(ErrCodeNotReading, asin, "book is not being read")
		}

	case event.SetFinishedEvent:
		if tracked && bs.Status == projection.StatusFinished {
			return newTransitionError(ErrCodeAlreadyFinished, asin, "book is already finished")
		}

	default:
		return fmt.Errorf("unsupported event kind %q", ev.Kind())
	}

	return nil
}
