// Package assertion implements the pass/fail counting assertion engine
// shared by every test in a session.
//
// Failing assertions never interrupt control flow: they only move the
// counters. The runner derives a test's status from Failed() after the body
// returns.
package assertion

import (
	"github.com/amstokely/fortest/internal/report"
)

// Verbosity controls which assertion results are forwarded to the reporter.
// It never influences the counters.
type Verbosity int

const (
	// Quiet forwards nothing.
	Quiet Verbosity = iota
	// FailOnly forwards failures.
	FailOnly
	// All forwards passes and failures.
	All
)

// String returns the configuration spelling of v.
func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case FailOnly:
		return "fail_only"
	case All:
		return "all"
	default:
		return "unknown"
	}
}

// ParseVerbosity accepts "quiet", "fail_only" and "all". Anything else maps
// to Quiet and ok=false.
func ParseVerbosity(s string) (v Verbosity, ok bool) {
	switch s {
	case "quiet":
		return Quiet, true
	case "fail_only":
		return FailOnly, true
	case "all":
		return All, true
	}
	return Quiet, false
}

// VerbosityFromInt maps the boundary integer encoding (0, 1, 2). Out of
// range values clamp to the nearest level.
func VerbosityFromInt(n int) Verbosity {
	switch {
	case n <= 0:
		return Quiet
	case n == 1:
		return FailOnly
	default:
		return All
	}
}

// Counts is a snapshot of the engine counters.
type Counts struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Engine counts assertion outcomes.
//
// Not safe for concurrent use; a session runs tests one at a time.
type Engine struct {
	passed    int
	failed    int
	reporter  report.Reporter
	verbosity Verbosity
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaultVerbosity sets the verbosity used by calls that do not pass
// their own. The default is Quiet.
func WithDefaultVerbosity(v Verbosity) EngineOption {
	return func(e *Engine) { e.verbosity = v }
}

// New creates an engine reporting to rep. A nil rep discards output.
func New(rep report.Reporter, opts ...EngineOption) *Engine {
	if rep == nil {
		rep = report.Discard
	}
	e := &Engine{reporter: rep}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Passed returns the number of passing assertions since the last Reset.
func (e *Engine) Passed() int { return e.passed }

// Failed returns the number of failing assertions since the last Reset.
func (e *Engine) Failed() int { return e.failed }

// Counts returns both counters.
func (e *Engine) Counts() Counts {
	return Counts{Passed: e.passed, Failed: e.failed}
}

// Reset zeroes both counters.
func (e *Engine) Reset() {
	e.passed = 0
	e.failed = 0
}

// Reporter returns the reporter assertion results are forwarded to.
func (e *Engine) Reporter() report.Reporter { return e.reporter }

// True passes iff cond holds.
func (e *Engine) True(cond bool, opts ...Option) bool {
	o := e.resolve(opts)
	if cond {
		e.pass(o, "condition is true")
		return true
	}
	e.fail(o, "condition is false")
	return false
}

// False passes iff cond does not hold.
func (e *Engine) False(cond bool, opts ...Option) bool {
	o := e.resolve(opts)
	if !cond {
		e.pass(o, "condition is false")
		return true
	}
	e.fail(o, "condition is true")
	return false
}

func (e *Engine) resolve(opts []Option) callOptions {
	o := callOptions{verbosity: e.verbosity}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (e *Engine) pass(o callOptions, msg string) {
	e.passed++
	if o.verbosity == All {
		e.reporter.Log(msg, report.TagPass)
	}
}

func (e *Engine) fail(o callOptions, msg string) {
	e.failed++
	if o.verbosity != Quiet {
		e.reporter.Log(msg, report.TagFail)
	}
}
