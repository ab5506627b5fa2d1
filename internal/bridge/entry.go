package bridge

import (
	"context"
	"fmt"

	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
	"github.com/amstokely/fortest/internal/runner"
)

// Entry point names used in fatal messages.
const (
	EntryRegisterSuite         = "c_register_test_suite"
	EntryRegisterFixture       = "c_register_fixture"
	EntryRegisterTest          = "c_register_test"
	EntryRegisterParameterized = "c_register_parameterized_test"
	EntryRunSession            = "c_run_test_session"
	EntrySuiteStatus           = "c_get_test_suite_status"
)

// RegisterSuite adds an empty suite to the session.
func (c *Context) RegisterSuite(name string) {
	defer c.guard(EntryRegisterSuite)
	_, err := c.session.AddSuite(normalize(name))
	c.check(EntryRegisterSuite, err)
}

// RegisterFixture attaches a fixture. scope is "test", "suite" or
// "session". An empty suite name registers the session fixture and is only
// valid with scope "session"; a non-empty suite name needs "test" or
// "suite".
func (c *Context) RegisterFixture(suite string, setup, teardown fixture.Func, args fixture.Handle, scope string) {
	defer c.guard(EntryRegisterFixture)
	suite = normalize(suite)

	parsed, err := fixture.ParseScope(scope)
	if err != nil {
		c.check(EntryRegisterFixture, runner.NewInvalidScopeError(suite, err.Error(), err))
		return
	}

	f := fixture.New(setup, teardown, args, parsed)
	if suite == "" {
		if parsed != fixture.ScopeSession {
			c.check(EntryRegisterFixture, runner.NewInvalidScopeError(suite,
				fmt.Sprintf("a fixture without a suite name must have scope session, got %s", parsed), nil))
			return
		}
		c.check(EntryRegisterFixture, c.session.AddFixture(f))
		return
	}
	c.check(EntryRegisterFixture, c.session.AddSuiteFixture(suite, f))
}

// RegisterTest adds a test to an existing suite.
func (c *Context) RegisterTest(suite, name string, fn runner.TestFunc) {
	defer c.guard(EntryRegisterTest)
	c.check(EntryRegisterTest, c.session.AddTest(normalize(suite), normalize(name), fn))
}

// RegisterParameterizedTest adds a parameterized test to an existing suite.
func (c *Context) RegisterParameterizedTest(suite, name string, fn runner.ParamFunc, indices []int) {
	defer c.guard(EntryRegisterParameterized)
	c.check(EntryRegisterParameterized, c.session.AddParameterizedTest(normalize(suite), normalize(name), fn, indices))
}

// RunSession runs every registered suite, then reports a summary line.
func (c *Context) RunSession() {
	defer c.guard(EntryRunSession)
	if !c.check(EntryRunSession, c.session.Run(context.Background(), c.reporter)) {
		return
	}

	sum := c.session.Summary()
	tag := report.TagPass
	if sum.Failed > 0 {
		tag = report.TagFail
	}
	c.reporter.Log(fmt.Sprintf("Summary: %d suites, %d tests, %d passed, %d failed, %d not run",
		sum.Suites, sum.Tests, sum.Passed, sum.Failed, sum.NotRun), tag)
}

// SuiteStatus returns 1 if any test in the suite failed, else 0.
func (c *Context) SuiteStatus(name string) int {
	defer c.guard(EntrySuiteStatus)
	statuses, err := c.session.SuiteStatus(normalize(name))
	if !c.check(EntrySuiteStatus, err) {
		return 0
	}
	for _, st := range statuses {
		if st == runner.StatusFail {
			return 1
		}
	}
	return 0
}
