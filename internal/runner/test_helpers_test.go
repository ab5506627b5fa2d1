package runner

import (
	"testing"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
)

// trace records callback invocations in order.
type trace struct {
	events []string
}

func (tr *trace) add(event string) {
	tr.events = append(tr.events, event)
}

// tracedFixture returns a fixture whose setup and teardown append
// "<name>.setup" and "<name>.teardown" to tr.
func tracedFixture(tr *trace, name string, args fixture.Handle, scope fixture.Scope) *fixture.Fixture {
	return fixture.New(
		func(fixture.Handle) error { tr.add(name + ".setup"); return nil },
		func(fixture.Handle) error { tr.add(name + ".teardown"); return nil },
		args,
		scope,
	)
}

func newTestEnv(t *testing.T) (*Env, *report.Recorder) {
	t.Helper()
	rec := report.NewRecorder()
	return &Env{
		Reporter: rec,
		Engine:   assertion.New(rec),
		Suite:    "suite",
		RunID:    "run-test",
	}, rec
}

func passingTest(fixture.Handle, fixture.Handle, fixture.Handle) error { return nil }
