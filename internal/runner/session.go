package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/amstokely/fortest/internal/assertion"
	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
)

// Session is the root of the hierarchy: a set of uniquely named suites plus
// an optional session-scope fixture.
type Session struct {
	engine         *assertion.Engine
	opts           []Option
	cfg            settings
	suites         map[string]*Suite
	sessionFixture *fixture.Fixture
}

// NewSession creates an empty session. opts are applied to the session and
// to every suite it creates.
func NewSession(engine *assertion.Engine, opts ...Option) *Session {
	return &Session{
		engine: engine,
		opts:   append([]Option(nil), opts...),
		cfg:    newSettings(opts),
		suites: make(map[string]*Suite),
	}
}

// Engine returns the assertion engine shared by every suite.
func (s *Session) Engine() *assertion.Engine { return s.engine }

// AddSuite creates a suite. The suite inherits the current session fixture.
func (s *Session) AddSuite(name string) (*Suite, error) {
	if _, exists := s.suites[name]; exists {
		return nil, NewDuplicateSuiteError(name)
	}
	suite := NewSuite(name, s.engine, s.opts...)
	suite.AddFixture(s.sessionFixture)
	s.suites[name] = suite
	return suite, nil
}

// Suite returns the named suite.
func (s *Session) Suite(name string) (*Suite, bool) {
	suite, ok := s.suites[name]
	return suite, ok
}

// AddFixture sets the session fixture and forwards it to every suite.
// f must have session scope.
func (s *Session) AddFixture(f *fixture.Fixture) error {
	if f == nil || f.Scope() != fixture.ScopeSession {
		return NewInvalidScopeError("", fmt.Sprintf("session fixture must have scope session, got %s", scopeOf(f)), nil)
	}
	s.sessionFixture = f
	for _, suite := range s.suites {
		suite.AddFixture(f)
	}
	return nil
}

// AddSuiteFixture attaches a test- or suite-scope fixture to a suite.
func (s *Session) AddSuiteFixture(suiteName string, f *fixture.Fixture) error {
	if f == nil || (f.Scope() != fixture.ScopeTest && f.Scope() != fixture.ScopeSuite) {
		return NewInvalidScopeError(suiteName, fmt.Sprintf("suite fixture must have scope test or suite, got %s", scopeOf(f)), nil)
	}
	suite, ok := s.suites[suiteName]
	if !ok {
		return NewUnknownSuiteError(suiteName)
	}
	suite.AddFixture(f)
	return nil
}

// AddTest registers a test in an existing suite.
func (s *Session) AddTest(suiteName, testName string, fn TestFunc) error {
	suite, ok := s.suites[suiteName]
	if !ok {
		return NewUnknownSuiteError(suiteName)
	}
	suite.AddTest(testName, fn)
	return nil
}

// AddParameterizedTest registers a parameterized test in an existing suite.
func (s *Session) AddParameterizedTest(suiteName, testName string, fn ParamFunc, indices []int) error {
	suite, ok := s.suites[suiteName]
	if !ok {
		return NewUnknownSuiteError(suiteName)
	}
	suite.AddParameterizedTest(testName, fn, indices)
	return nil
}

// SuiteNames returns suite names in run order.
func (s *Session) SuiteNames() []string {
	names := make([]string, 0, len(s.suites))
	for name := range s.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes session setup, every suite in name order, then session
// teardown. Before each suite runs it receives a callback-free session
// fixture carrying the session args, so suite runs never repeat the session
// setup. The first error stops the run and is returned after teardown.
func (s *Session) Run(ctx context.Context, rep report.Reporter) (err error) {
	if rep == nil {
		rep = report.Discard
	}
	rep.Log("Starting test session", report.TagInfo)

	if err := setupFixture(s.sessionFixture, ""); err != nil {
		return err
	}
	defer func() {
		if tdErr := teardownFixture(s.sessionFixture, ""); tdErr != nil {
			err = errors.Join(err, tdErr)
		}
	}()

	sessionArgs := fixture.ArgsOnly(fixture.ArgsOf(s.sessionFixture), fixture.ScopeSession)
	for _, name := range s.SuiteNames() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session cancelled before suite %s: %w", name, err)
		}
		suite := s.suites[name]
		suite.AddFixture(sessionArgs)

		rep.Log("Running test suite: "+name, report.TagInfo)
		if err := suite.Run(ctx, rep); err != nil {
			return err
		}
	}

	rep.Log("Finished test session", report.TagInfo)
	return nil
}

// SuiteStatus returns the status map of the named suite.
func (s *Session) SuiteStatus(name string) (map[string]Status, error) {
	suite, ok := s.suites[name]
	if !ok {
		return nil, NewUnknownSuiteError(name)
	}
	return suite.Statuses(), nil
}

// Summary totals statuses across every suite.
type Summary struct {
	Suites int `json:"suites"`
	Tests  int `json:"tests"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	NotRun int `json:"not_run"`
}

// Summary counts suite statuses. Parameterized tests count once, by their
// aggregate status.
func (s *Session) Summary() Summary {
	sum := Summary{Suites: len(s.suites)}
	for _, suite := range s.suites {
		for _, st := range suite.Statuses() {
			sum.Tests++
			switch st {
			case StatusPass:
				sum.Passed++
			case StatusFail:
				sum.Failed++
			default:
				sum.NotRun++
			}
		}
	}
	return sum
}

func scopeOf(f *fixture.Fixture) string {
	if f == nil {
		return "none"
	}
	return f.Scope().String()
}
