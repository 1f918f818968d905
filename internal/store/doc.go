// Package store provides SQLite-backed durable storage for the reading
// event log.
//
// The log is strictly append-only:
//   - Append writes a batch of events inside a single transaction, so a
//     commit is all-or-nothing even across a process crash.
//   - Load reads every event in append order (ORDER BY seq ASC) and fails
//     with *CorruptLogError on the first undecodable row; a log that
//     cannot be fully parsed is a fatal condition, never partially
//     recovered.
//   - UPDATE and DELETE on the events table are rejected by schema-level
//     triggers.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The connection pool is capped at a single connection; the process model
// is single-writer and SQLite's journal provides the crash atomicity the
// append contract requires.
package store
