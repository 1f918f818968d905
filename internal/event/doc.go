// Package event defines the closed set of reading-progress events.
//
// An Event records one fact about one book, identified by its ASIN:
//   - AddEvent: the book entered the library
//   - SetReadingEvent: the reader started the book at a position
//   - ReadEvent: the reader advanced by a number of positions
//   - SetFinishedEvent: the reader finished the book
//
// Events are immutable once created and totally ordered by the sequence
// the store assigns on append. They carry no derived state; current state
// is always recomputed by folding the full event sequence (see the
// projection package).
//
// Each event also has a canonical single-line textual form (the format of
// the original plain-text store), produced by String and consumed by
// Parse. The SQLite store does not use this form; it exists for display
// and for importing legacy logs.
package event
