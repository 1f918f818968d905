package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/msuozzo/aduro/internal/event"
	"github.com/msuozzo/aduro/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aduro.db")
	clock := testutil.NewDeterministicClock(
		time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), time.Second)
	s, err := Open(path, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_EmptyLog(t *testing.T) {
	s := openTestStore(t)

	events, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if events == nil {
		t.Error("Load() on empty log should return empty slice, not nil")
	}
	if len(events) != 0 {
		t.Errorf("Load() on empty log returned %d events", len(events))
	}
}

func TestAppendLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := []event.Event{
		event.AddEvent{Asin: "B001"},
		event.SetReadingEvent{Asin: "B001", Position: 40},
		event.ReadEvent{Asin: "B001", Delta: 120},
		event.SetFinishedEvent{Asin: "B001"},
	}
	if err := s.Append(ctx, batch); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(batch, loaded) {
		t.Errorf("Load() = %v, want %v", loaded, batch)
	}
}

func TestAppend_PreservesPriorContent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []event.Event{
		event.AddEvent{Asin: "B001"},
		event.SetReadingEvent{Asin: "B001", Position: 0},
	}
	second := []event.Event{
		event.SetFinishedEvent{Asin: "B001"},
		event.AddEvent{Asin: "B002"},
	}

	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("first Append() failed: %v", err)
	}
	if err := s.Append(ctx, second); err != nil {
		t.Fatalf("second Append() failed: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := append(append([]event.Event{}, first...), second...)
	if !reflect.DeepEqual(want, loaded) {
		t.Errorf("Load() = %v, want prior content followed by new batch %v", loaded, want)
	}
}

func TestAppend_EmptyBatchIsNoOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, nil); err != nil {
		t.Fatalf("Append(nil) failed: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("empty append produced %d events", len(loaded))
	}
}

func TestLoad_RepeatedLoadsAreIdentical(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	batch := []event.Event{
		event.AddEvent{Asin: "B001"},
		event.SetReadingEvent{Asin: "B001", Position: 10},
	}
	if err := s.Append(ctx, batch); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	first, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("first Load() failed: %v", err)
	}
	second, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated loads differ: %v vs %v", first, second)
	}
}

func TestLoad_UnknownKindIsCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`
		INSERT INTO events (id, kind, asin, position, recorded_at)
		VALUES ('rec-1', 'bookmarked', 'B001', NULL, '2026-08-01T00:00:00Z')
	`)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	_, err = s.Load(ctx)
	if !IsCorruptLog(err) {
		t.Fatalf("Load() on unknown kind = %v, want *CorruptLogError", err)
	}
}

func TestLoad_MissingPositionIsCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`
		INSERT INTO events (id, kind, asin, position, recorded_at)
		VALUES ('rec-1', 'reading', 'B001', NULL, '2026-08-01T00:00:00Z')
	`)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	_, err = s.Load(ctx)
	if !IsCorruptLog(err) {
		t.Fatalf("Load() on reading event without position = %v, want *CorruptLogError", err)
	}
}

func TestAppend_StampsRecordedAtFromClock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, []event.Event{event.AddEvent{Asin: "B001"}}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	var recordedAt string
	if err := s.db.QueryRow("SELECT recorded_at FROM events").Scan(&recordedAt); err != nil {
		t.Fatalf("query recorded_at failed: %v", err)
	}
	if recordedAt != "2026-08-01T12:00:00Z" {
		t.Errorf("recorded_at = %q, want clock-stamped instant", recordedAt)
	}
}

func TestEvents_RejectMutation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, []event.Event{event.AddEvent{Asin: "B001"}}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if _, err := s.db.Exec("UPDATE events SET asin = 'B999'"); err == nil {
		t.Error("UPDATE on events should be rejected by trigger")
	}
	if _, err := s.db.Exec("DELETE FROM events"); err == nil {
		t.Error("DELETE on events should be rejected by trigger")
	}
}
