package event

import "fmt"

// Kind identifies an event variant. Kinds are persisted verbatim in the
// store's kind column, so values are part of the log format and must not
// change.
type Kind string

const (
	// KindAdd records a book entering the library.
	KindAdd Kind = "add"

	// KindReading records the start of reading at an initial position.
	KindReading Kind = "reading"

	// KindRead records a forward advance of the reading position.
	KindRead Kind = "read"

	// KindFinished records completion of a book.
	KindFinished Kind = "finished"
)

// PositionMeasure names the unit of the position marker. Kindle exposes
// "locations"; the value is opaque to everything except display.
const PositionMeasure = "LOCATION"

// Event is one immutable state-transition record for one book.
type Event interface {
	// Kind returns the variant tag.
	Kind() Kind

	// ASIN returns the identifier of the book the event concerns.
	ASIN() string

	// String returns the canonical single-line textual form.
	String() string
}

// AddEvent represents the addition of a book to the library.
type AddEvent struct {
	Asin string
}

func (e AddEvent) Kind() Kind   { return KindAdd }
func (e AddEvent) ASIN() string { return e.Asin }

func (e AddEvent) String() string {
	return fmt.Sprintf("ADD %s", e.Asin)
}

// SetReadingEvent represents the start of reading a book from an initial
// position.
type SetReadingEvent struct {
	Asin     string
	Position int
}

func (e SetReadingEvent) Kind() Kind   { return KindReading }
func (e SetReadingEvent) ASIN() string { return e.Asin }

func (e SetReadingEvent) String() string {
	return fmt.Sprintf("START READING %s FROM %s %d", e.Asin, PositionMeasure, e.Position)
}

// ReadEvent represents a forward advance of the reading position by Delta
// positions. Delta must be positive; NewReadEvent enforces this.
type ReadEvent struct {
	Asin  string
	Delta int
}

// NewReadEvent constructs a ReadEvent, rejecting non-positive deltas.
func NewReadEvent(asin string, delta int) (ReadEvent, error) {
	if delta <= 0 {
		return ReadEvent{}, fmt.Errorf("read event for %s: delta must be positive, got %d", asin, delta)
	}
	return ReadEvent{Asin: asin, Delta: delta}, nil
}

func (e ReadEvent) Kind() Kind   { return KindRead }
func (e ReadEvent) ASIN() string { return e.Asin }

func (e ReadEvent) String() string {
	return fmt.Sprintf("READ %s FOR %d %sS", e.Asin, e.Delta, PositionMeasure)
}

// SetFinishedEvent represents the completion of a book.
type SetFinishedEvent struct {
	Asin string
}

func (e SetFinishedEvent) Kind() Kind   { return KindFinished }
func (e SetFinishedEvent) ASIN() string { return e.Asin }

func (e SetFinishedEvent) String() string {
	return fmt.Sprintf("FINISHED READING %s", e.Asin)
}
