// Package store provides the SQLite-backed results history for test runs.
//
// The store is an append-only table of per-test outcomes:
//   - run_id: UUID shared by every row written during one suite run
//   - suite, test_name: where the outcome came from
//   - status: PASS or FAIL (NONE is never persisted)
//   - duration: wall time of the test body in seconds
//
// Rows are read back in insertion order (ORDER BY id ASC), so listing a run
// reproduces the order tests executed in.
//
// # Database Configuration
//
//   - WAL mode: readers (the fortest CLI) do not block a running suite
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// A connection is owned by exactly one suite run: the suite opens the store
// at the start of its run and closes it at the end.
package store
