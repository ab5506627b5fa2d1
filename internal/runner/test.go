package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/amstokely/fortest/internal/fixture"
)

// TestFunc is a registered test body. It receives the test, suite and
// session argument handles (null when no fixture of that scope is attached).
// Assertions are made through the shared engine; a returned error aborts the
// run.
type TestFunc func(test, suite, session fixture.Handle) error

// Test is a single named test case.
type Test struct {
	name     string
	fn       TestFunc
	fixtures fixtureSet
	status   Status
}

// NewTest creates a test with no fixtures attached.
func NewTest(name string, fn TestFunc) *Test {
	return &Test{name: name, fn: fn}
}

// Name returns the test name.
func (t *Test) Name() string { return t.name }

// Status returns the status of the last run, or StatusNone.
func (t *Test) Status() Status { return t.status }

// AddFixture attaches f in the slot for its scope, replacing any previous
// fixture of that scope.
func (t *Test) AddFixture(f *fixture.Fixture) {
	t.fixtures.set(f)
}

// Run executes the test once: test-scope setup, engine reset, body, status,
// then test-scope teardown. Teardown runs even when the body errors or
// panics. A body failure is returned as *BodyError after teardown and sets
// the status to FAIL. A setup failure is returned without running the body
// or the teardown.
func (t *Test) Run(ctx context.Context, env *Env) (Status, error) {
	start := env.now()
	status, err := t.execute(env)
	t.status = status
	if err != nil {
		return status, err
	}
	env.record(ctx, t.name, status, env.now().Sub(start))
	return status, nil
}

func (t *Test) execute(env *Env) (status Status, err error) {
	testFixture := t.fixtures.get(fixture.ScopeTest)
	if err := setupFixture(testFixture, t.name); err != nil {
		return StatusFail, err
	}
	defer func() {
		if tdErr := teardownFixture(testFixture, t.name); tdErr != nil {
			err = errors.Join(err, tdErr)
		}
	}()

	env.Engine.Reset()
	bodyErr := invoke(t.name, 0, false, func() error {
		return t.fn(t.fixtures.args(fixture.ScopeTest), t.fixtures.args(fixture.ScopeSuite), t.fixtures.args(fixture.ScopeSession))
	})
	if bodyErr != nil {
		return StatusFail, bodyErr
	}
	return statusFromFailures(env.Engine.Failed()), nil
}

// invoke calls fn, turning a returned error or a panic into a *BodyError.
func invoke(name string, index int, parameterized bool, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &BodyError{Test: name, Index: index, Parameterized: parameterized, Panicked: true, Cause: cause}
		}
	}()
	if fnErr := fn(); fnErr != nil {
		return &BodyError{Test: name, Index: index, Parameterized: parameterized, Cause: fnErr}
	}
	return nil
}

// fixtureSet holds at most one fixture per scope.
type fixtureSet [3]*fixture.Fixture

func (s *fixtureSet) set(f *fixture.Fixture) {
	if f == nil || !f.Scope().Valid() {
		return
	}
	s[f.Scope()] = f
}

func (s *fixtureSet) get(scope fixture.Scope) *fixture.Fixture {
	if !scope.Valid() {
		return nil
	}
	return s[scope]
}

func (s *fixtureSet) args(scope fixture.Scope) fixture.Handle {
	return fixture.ArgsOf(s.get(scope))
}

func (s *fixtureSet) each(fn func(*fixture.Fixture)) {
	for _, f := range s {
		if f != nil {
			fn(f)
		}
	}
}
