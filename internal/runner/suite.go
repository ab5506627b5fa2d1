package runner

import (
	"context"
	"errors"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
)

// Suite is a named group of tests and parameterized tests sharing suite- and
// session-scope fixtures.
//
// Fixtures follow a last-wins policy: AddFixture replaces the suite's slot
// for the fixture's scope and forwards the fixture to every registered test,
// so tests registered before and after the call see the same fixture.
type Suite struct {
	name   string
	engine *assertion.Engine
	cfg    settings

	fixtures fixtureSet

	tests      map[string]*Test
	testOrder  []string
	params     map[string]*ParameterizedTest
	paramOrder []string
}

// NewSuite creates an empty suite that asserts through engine.
func NewSuite(name string, engine *assertion.Engine, opts ...Option) *Suite {
	return &Suite{
		name:   name,
		engine: engine,
		cfg:    newSettings(opts),
		tests:  make(map[string]*Test),
		params: make(map[string]*ParameterizedTest),
	}
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Fixture returns the fixture currently held for scope, or nil.
func (s *Suite) Fixture(scope fixture.Scope) *fixture.Fixture {
	return s.fixtures.get(scope)
}

// AddFixture stores f and forwards it to every registered test.
func (s *Suite) AddFixture(f *fixture.Fixture) {
	if f == nil {
		return
	}
	s.fixtures.set(f)
	for _, name := range s.testOrder {
		s.tests[name].AddFixture(f)
	}
	for _, name := range s.paramOrder {
		s.params[name].AddFixture(f)
	}
}

// AddTest registers a test. Re-registering a name replaces the test but
// keeps its first run position.
func (s *Suite) AddTest(name string, fn TestFunc) *Test {
	t := NewTest(name, fn)
	s.fixtures.each(t.AddFixture)
	if _, exists := s.tests[name]; !exists {
		s.testOrder = append(s.testOrder, name)
	}
	s.tests[name] = t
	return t
}

// AddParameterizedTest registers a parameterized test. Re-registering a name
// replaces it but keeps its first run position.
func (s *Suite) AddParameterizedTest(name string, fn ParamFunc, indices []int) *ParameterizedTest {
	p := NewParameterizedTest(name, fn, indices)
	s.fixtures.each(p.AddFixture)
	if _, exists := s.params[name]; !exists {
		s.paramOrder = append(s.paramOrder, name)
	}
	s.params[name] = p
	return p
}

// TestNames returns test names in run order, parameterized tests last.
func (s *Suite) TestNames() []string {
	names := make([]string, 0, len(s.testOrder)+len(s.paramOrder))
	names = append(names, s.testOrder...)
	return append(names, s.paramOrder...)
}

// Run executes suite setup, every test in insertion order, every
// parameterized test in insertion order, then suite teardown. The first body
// error stops the run and is returned once teardown has completed.
func (s *Suite) Run(ctx context.Context, rep report.Reporter) (err error) {
	if rep == nil {
		rep = report.Discard
	}
	env := &Env{
		Reporter: rep,
		Engine:   s.engine,
		Logger:   s.cfg.logger,
		Clock:    s.cfg.clock,
		Suite:    s.name,
		RunID:    s.cfg.runID(),
	}
	if s.cfg.openStore != nil {
		st, openErr := s.cfg.openStore()
		if openErr != nil {
			s.cfg.logger.Warn("results store unavailable, results will not be persisted",
				"suite", s.name,
				"error", openErr,
			)
		} else {
			env.Results = st
			defer func() {
				if closeErr := st.Close(); closeErr != nil {
					s.cfg.logger.Warn("failed to close results store", "suite", s.name, "error", closeErr)
				}
			}()
		}
	}

	suiteFixture := s.fixtures.get(fixture.ScopeSuite)
	if err := setupFixture(suiteFixture, s.name); err != nil {
		return err
	}
	defer func() {
		if tdErr := teardownFixture(suiteFixture, s.name); tdErr != nil {
			err = errors.Join(err, tdErr)
		}
	}()

	s.cfg.logger.Debug("running suite", "suite", s.name, "run_id", env.RunID, "tests", len(s.testOrder), "parameterized", len(s.paramOrder))

	for _, name := range s.testOrder {
		rep.Log("Running test: "+name, report.TagInfo)
		status, runErr := s.tests[name].Run(ctx, env)
		if runErr != nil {
			rep.Log("Test threw error: "+name+": "+runErr.Error(), report.TagFail)
			return runErr
		}
		if status == StatusPass {
			rep.Log("Test passed: "+name, report.TagPass)
		} else {
			rep.Log("Test failed: "+name, report.TagFail)
		}
	}

	for _, name := range s.paramOrder {
		if runErr := s.params[name].Run(ctx, env); runErr != nil {
			return runErr
		}
	}
	return nil
}

// Statuses returns test statuses merged with the aggregated status of each
// parameterized test. A parameterized test shadows a plain test of the same
// name.
func (s *Suite) Statuses() map[string]Status {
	out := make(map[string]Status, len(s.tests)+len(s.params))
	for name, t := range s.tests {
		out[name] = t.Status()
	}
	for name, p := range s.params {
		out[name] = p.Aggregate()
	}
	return out
}

// Failed reports whether any test in the suite has status FAIL.
func (s *Suite) Failed() bool {
	for _, st := range s.Statuses() {
		if st == StatusFail {
			return true
		}
	}
	return false
}
