// Package projection derives current library state from the event log.
//
// Fold is a pure function from an ordered event sequence to a State map.
// It performs no I/O and consults no clock, so the same sequence always
// yields the same state, and replaying a log any number of times is
// idempotent.
//
// Transitions are monotonic: unread → reading → finished. Finished is
// terminal and absorbing; later reading or read events for a finished
// book do not change its state.
package projection
