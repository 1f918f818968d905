package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msuozzo/aduro/internal/event"
)

// Append durably writes the given events, in order, to the end of the log.
//
// The whole batch is written inside one transaction: either every event
// becomes durable or none does, so a crash mid-commit never leaves a
// truncated record for Load to trip over. Appending an empty batch is a
// no-op.
//
// Each event is stamped with a UUIDv7 record ID and the current time.
func (s *Store) Append(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append events: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (id, kind, asin, position, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("append events: prepare: %w", err)
	}
	defer stmt.Close()

	recordedAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, ev := range events {
		id := uuid.Must(uuid.NewV7()).String()
		if _, err := stmt.ExecContext(ctx, id, string(ev.Kind()), ev.ASIN(), positionColumn(ev), recordedAt); err != nil {
			return fmt.Errorf("append events: insert %s for %s: %w", ev.Kind(), ev.ASIN(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append events: commit: %w", err)
	}

	return nil
}

// positionColumn maps an event's numeric payload to the nullable position
// column. Variants without a position store NULL.
func positionColumn(ev event.Event) sql.NullInt64 {
	switch e := ev.(type) {
	case event.SetReadingEvent:
		return sql.NullInt64{Int64: int64(e.Position), Valid: true}
	case event.ReadEvent:
		return sql.NullInt64{Int64: int64(e.Delta), Valid: true}
	default:
		return sql.NullInt64{}
	}
}
