// Package store provides a SQLite-backed journal of batch evaluation runs.
//
// Two tables hold the journal:
//   - runs: one row per batch run, ordered by a logical sequence number
//   - results: one row per evaluated input, keyed by (run_id, idx)
//
// Inputs and outputs are stored as the canonical JSON produced by
// value.Marshal, so the same value always yields the same bytes and
// input_hash (value.Hash) can be used to find earlier evaluations of an
// input.
//
// Queries order by created_seq and idx only. Wall-clock time is never
// recorded.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
