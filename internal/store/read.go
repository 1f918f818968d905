package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msuozzo/aduro/internal/event"
)

// Load reads and decodes every persisted event in append order.
//
// Returns an empty slice (not nil) for an empty log. The first row that
// cannot be decoded aborts the load with *CorruptLogError; callers must
// treat that as fatal.
func (s *Store) Load(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, asin, position
		FROM events
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		var (
			seq      int64
			kind     string
			asin     string
			position sql.NullInt64
		)
		if err := rows.Scan(&seq, &kind, &asin, &position); err != nil {
			return nil, fmt.Errorf("load events: scan: %w", err)
		}

		ev, err := decodeEvent(seq, kind, asin, position)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load events: iterate: %w", err)
	}

	return events, nil
}

// decodeEvent reconstructs an event from its persisted columns.
// Any inconsistency (unknown kind, missing or invalid position for a kind
// that requires one) is log corruption, not a recoverable condition.
func decodeEvent(seq int64, kind, asin string, position sql.NullInt64) (event.Event, error) {
	if asin == "" {
		return nil, &CorruptLogError{Seq: seq, Reason: "empty asin"}
	}

	switch event.Kind(kind) {
	case event.KindAdd:
		return event.AddEvent{Asin: asin}, nil

	case event.KindReading:
		if !position.Valid || position.Int64 < 0 {
			return nil, &CorruptLogError{Seq: seq, Reason: "reading event without a valid position"}
		}
		return event.SetReadingEvent{Asin: asin, Position: int(position.Int64)}, nil

	case event.KindRead:
		if !position.Valid || position.Int64 <= 0 {
			return nil, &CorruptLogError{Seq: seq, Reason: "read event without a positive delta"}
		}
		return event.ReadEvent{Asin: asin, Delta: int(position.Int64)}, nil

	case event.KindFinished:
		return event.SetFinishedEvent{Asin: asin}, nil

	default:
		return nil, &CorruptLogError{Seq: seq, Reason: fmt.Sprintf("unknown event kind %q", kind)}
	}
}
