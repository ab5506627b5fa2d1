package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDs generates run ids for tests.
//
// With a fixed id every call returns the same value, which makes persisted
// rows and golden output stable. With an empty id it returns "run-1",
// "run-2", ... so separate suite runs stay distinguishable.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedRunIDs struct {
	mu    sync.Mutex
	fixed string
	seq   int
}

// NewFixedRunIDs creates a run id source. See FixedRunIDs for the empty-id
// behaviour.
func NewFixedRunIDs(id string) *FixedRunIDs {
	return &FixedRunIDs{fixed: id}
}

// Next returns the next run id.
//
// Matches the signature expected by runner.WithRunIDs.
func (g *FixedRunIDs) Next() string {
	if g.fixed != "" {
		return g.fixed
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("run-%d", g.seq)
}
