package store

import (
	"context"
	"fmt"
	"time"
)

// Persisted status values.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Result is one persisted test outcome.
type Result struct {
	ID       int64         `json:"id"`
	RunID    string        `json:"run_id"`
	Suite    string        `json:"suite"`
	Test     string        `json:"test"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration_ns"`
}

// WriteResult appends one row. Status must be PASS or FAIL.
func (s *Store) WriteResult(ctx context.Context, r Result) error {
	if r.Status != StatusPass && r.Status != StatusFail {
		return fmt.Errorf("write result: invalid status %q for %s/%s", r.Status, r.Suite, r.Test)
	}
	if r.RunID == "" {
		return fmt.Errorf("write result: run id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (run_id, suite, test_name, status, duration)
		VALUES (?, ?, ?, ?, ?)
	`,
		r.RunID,
		r.Suite,
		r.Test,
		r.Status,
		r.Duration.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ReadResults returns rows in insertion order. An empty runID returns every
// row in the store.
func (s *Store) ReadResults(ctx context.Context, runID string) ([]Result, error) {
	query := `SELECT id, run_id, suite, test_name, status, duration FROM results`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r       Result
			seconds float64
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Suite, &r.Test, &r.Status, &seconds); err != nil {
			return nil, fmt.Errorf("read results: scan: %w", err)
		}
		r.Duration = time.Duration(seconds * float64(time.Second))
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return results, nil
}

// ReadRunIDs returns the distinct run ids in the order runs started.
func (s *Store) ReadRunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id FROM results
		GROUP BY run_id
		ORDER BY MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read run ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("read run ids: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run ids: %w", err)
	}
	return ids, nil
}
