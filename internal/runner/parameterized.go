package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
)

// ParamFunc is a parameterized test body. idx is the current parameter index.
type ParamFunc func(test, suite, session fixture.Handle, idx int) error

// variationBorder frames each variation in the report.
var variationBorder = "\n" + strings.Repeat("=", 40)

// ParameterizedTest runs one body once per parameter index.
type ParameterizedTest struct {
	name     string
	fn       ParamFunc
	indices  []int
	fixtures fixtureSet
	statuses map[int]Status
}

// NewParameterizedTest creates a parameterized test over indices, run in the
// given order. Duplicate indices run more than once; the last run wins.
func NewParameterizedTest(name string, fn ParamFunc, indices []int) *ParameterizedTest {
	return &ParameterizedTest{
		name:     name,
		fn:       fn,
		indices:  append([]int(nil), indices...),
		statuses: make(map[int]Status),
	}
}

// Name returns the test name.
func (p *ParameterizedTest) Name() string { return p.name }

// Indices returns a copy of the parameter indices.
func (p *ParameterizedTest) Indices() []int { return append([]int(nil), p.indices...) }

// AddFixture attaches f in the slot for its scope.
func (p *ParameterizedTest) AddFixture(f *fixture.Fixture) {
	p.fixtures.set(f)
}

// Status returns the status recorded for idx, or StatusNone if idx has not
// run.
func (p *ParameterizedTest) Status(idx int) Status {
	return p.statuses[idx]
}

// Statuses returns a copy of the per-index statuses.
func (p *ParameterizedTest) Statuses() map[int]Status {
	out := make(map[int]Status, len(p.statuses))
	for idx, st := range p.statuses {
		out[idx] = st
	}
	return out
}

// Aggregate folds all recorded per-index statuses.
func (p *ParameterizedTest) Aggregate() Status {
	all := make([]Status, 0, len(p.statuses))
	for _, st := range p.statuses {
		all = append(all, st)
	}
	return Aggregate(all...)
}

// Run executes every index in order. A body error stops the loop after the
// current index's teardown; indices after it keep StatusNone.
func (p *ParameterizedTest) Run(ctx context.Context, env *Env) error {
	rep := env.reporter()
	suiteArgs := p.fixtures.args(fixture.ScopeSuite)
	sessionArgs := p.fixtures.args(fixture.ScopeSession)
	p.statuses = make(map[int]Status, len(p.indices))

	for _, idx := range p.indices {
		label := variationName(p.name, idx)
		rep.Log("Running parameterized test: "+label, report.TagInfo, variationBorder)

		start := env.now()
		status, err := p.runIndex(env, idx, suiteArgs, sessionArgs)
		p.statuses[idx] = status
		if err != nil {
			rep.Log("Test threw error: "+label+": "+err.Error(), report.TagFail)
			return err
		}
		env.record(ctx, label, status, env.now().Sub(start))

		if status == StatusPass {
			rep.Log("Test passed: "+label, report.TagPass)
		} else {
			rep.Log("Test failed: "+label, report.TagFail)
		}
	}
	return nil
}

func (p *ParameterizedTest) runIndex(env *Env, idx int, suiteArgs, sessionArgs fixture.Handle) (status Status, err error) {
	testFixture := p.fixtures.get(fixture.ScopeTest)
	owner := variationName(p.name, idx)
	if err := setupFixture(testFixture, owner); err != nil {
		return StatusFail, err
	}
	defer func() {
		if tdErr := teardownFixture(testFixture, owner); tdErr != nil {
			err = errors.Join(err, tdErr)
		}
	}()

	env.Engine.Reset()
	bodyErr := invoke(p.name, idx, true, func() error {
		return p.fn(fixture.ArgsOf(testFixture), suiteArgs, sessionArgs, idx)
	})
	if bodyErr != nil {
		return StatusFail, bodyErr
	}
	return statusFromFailures(env.Engine.Failed()), nil
}

func variationName(name string, idx int) string {
	return fmt.Sprintf("%s [param=%d]", name, idx)
}
