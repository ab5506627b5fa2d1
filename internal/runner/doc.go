// Package runner implements the session → suite → test hierarchy.
//
// Fixtures flow top-down: a session fixture is forwarded to every suite, and
// a suite forwards each fixture it receives to every test it holds. Statuses
// flow bottom-up: a parameterized test aggregates its per-index statuses and
// a suite merges test and parameterized statuses into one map.
//
// # Execution model
//
// Runs are single-threaded and synchronous. A Session runs its suites in
// name order; a Suite runs its tests, then its parameterized tests, each in
// insertion order. All tests of a session share one assertion.Engine, which
// is reset before every test body (and before every parameter index).
//
// # Errors
//
// Configuration mistakes (duplicate or unknown suite, wrong fixture scope)
// are returned as *ConfigError from the registration call that detects
// them. A failing assertion is not an error. A test body that returns an
// error or panics produces a *BodyError: the test's teardown runs first, the
// run stops, and the error is returned to the caller of Run after every
// enclosing teardown has completed.
package runner
