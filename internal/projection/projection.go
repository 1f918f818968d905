package projection

import (
	"github.com/msuozzo/aduro/internal/event"
)

// Status is a book's reading status.
type Status int

const (
	// StatusUnread means the book is known but not started.
	StatusUnread Status = iota

	// StatusReading means the book is in progress.
	StatusReading

	// StatusFinished means the book is done. Terminal and absorbing.
	StatusFinished
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnread:
		return "unread"
	case StatusReading:
		return "reading"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// BookState is the derived state of a single book.
type BookState struct {
	Status Status

	// LastPosition is the last known reading position. Meaningful only
	// while Status is reading; cleared on finish.
	LastPosition int
}

// State maps asin to derived book state. Never persisted; always rebuilt
// by folding the full event sequence in append order.
type State map[string]BookState

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for asin, bs := range s {
		out[asin] = bs
	}
	return out
}

// Fold replays events in order into a fresh State.
func Fold(events []event.Event) State {
	state := State{}
	for _, ev := range events {
		Apply(state, ev)
	}
	return state
}

// Apply folds a single event into state in place.
//
// Apply is total: events for asins with no existing entry create one
// rather than erroring. Folding a prefix and then the remaining suffix is
// equivalent to folding the whole sequence at once.
func Apply(state State, ev event.Event) {
	switch e := ev.(type) {
	case event.AddEvent:
		// Adding an already-tracked book never downgrades its state.
		if _, ok := state[e.Asin]; !ok {
			state[e.Asin] = BookState{Status: StatusUnread}
		}

	case event.SetReadingEvent:
		if state[e.Asin].Status == StatusFinished {
			return
		}
		state[e.Asin] = BookState{Status: StatusReading, LastPosition: e.Position}

	case event.ReadEvent:
		// A position advance only means something for a book in
		// progress. Finished absorbs; unread has no position baseline.
		bs, ok := state[e.Asin]
		if !ok || bs.Status != StatusReading {
			return
		}
		bs.LastPosition += e.Delta
		state[e.Asin] = bs

	case event.SetFinishedEvent:
		// Finishing is legal from any prior status, including unread
		// (short reads may never get a start declaration). Tracked
		// position is no longer meaningful.
		state[e.Asin] = BookState{Status: StatusFinished}
	}
}
