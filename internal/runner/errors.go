package runner

import (
	"errors"
	"fmt"

	"github.com/amstokely/fortest/internal/fixture"
)

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeDuplicateSuite indicates a suite name is already registered.
	ErrCodeDuplicateSuite ConfigErrorCode = "DUPLICATE_SUITE"

	// ErrCodeUnknownSuite indicates a referenced suite does not exist.
	ErrCodeUnknownSuite ConfigErrorCode = "UNKNOWN_SUITE"

	// ErrCodeInvalidScope indicates a fixture scope that the registration
	// form does not accept (or that could not be parsed at all).
	ErrCodeInvalidScope ConfigErrorCode = "INVALID_SCOPE"
)

// ConfigError is raised synchronously by registration calls. It is never
// suppressed inside the runner.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Message is a human-readable description.
	Message string

	// Suite names the suite involved, if any.
	Suite string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Suite != "" {
		return fmt.Sprintf("%s: %s (suite=%s)", e.Code, e.Message, e.Suite)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewDuplicateSuiteError creates a ConfigError for a repeated suite name.
func NewDuplicateSuiteError(suite string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeDuplicateSuite,
		Message: fmt.Sprintf("test suite with name '%s' already exists in session", suite),
		Suite:   suite,
	}
}

// NewUnknownSuiteError creates a ConfigError for a missing suite.
func NewUnknownSuiteError(suite string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownSuite,
		Message: fmt.Sprintf("suite '%s' does not exist in session", suite),
		Suite:   suite,
	}
}

// NewInvalidScopeError creates a ConfigError for a fixture scope that the
// registration form does not accept.
func NewInvalidScopeError(suite, message string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidScope,
		Message: message,
		Suite:   suite,
		Cause:   cause,
	}
}

func hasConfigCode(err error, code ConfigErrorCode) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsDuplicateSuite reports whether err is a duplicate-suite ConfigError.
func IsDuplicateSuite(err error) bool { return hasConfigCode(err, ErrCodeDuplicateSuite) }

// IsUnknownSuite reports whether err is an unknown-suite ConfigError.
func IsUnknownSuite(err error) bool { return hasConfigCode(err, ErrCodeUnknownSuite) }

// IsInvalidScope reports whether err is an invalid-scope ConfigError.
func IsInvalidScope(err error) bool { return hasConfigCode(err, ErrCodeInvalidScope) }

// IsConfigError reports whether err is any ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// BodyError wraps a failure signalled by a registered test function: either
// a returned error or a recovered panic.
type BodyError struct {
	// Test is the test name.
	Test string

	// Index is the parameter index; only meaningful when Parameterized.
	Index int

	// Parameterized is true for errors from a ParameterizedTest.
	Parameterized bool

	// Panicked is true when Cause was recovered from a panic.
	Panicked bool

	// Cause is the body's error.
	Cause error
}

// Error implements the error interface.
func (e *BodyError) Error() string {
	name := e.Test
	if e.Parameterized {
		name = variationName(e.Test, e.Index)
	}
	if e.Panicked {
		return fmt.Sprintf("test %s panicked: %v", name, e.Cause)
	}
	return fmt.Sprintf("test %s failed with error: %v", name, e.Cause)
}

// Unwrap returns the body's error.
func (e *BodyError) Unwrap() error {
	return e.Cause
}

// IsBodyError reports whether err carries a BodyError.
func IsBodyError(err error) bool {
	var be *BodyError
	return errors.As(err, &be)
}

// FixtureError wraps a failing setup or teardown callback.
type FixtureError struct {
	Scope fixture.Scope
	Phase string // "setup" or "teardown"
	Owner string // test or suite name; empty for the session fixture
	Cause error
}

// Error implements the error interface.
func (e *FixtureError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("%s fixture %s failed for %s: %v", e.Scope, e.Phase, e.Owner, e.Cause)
	}
	return fmt.Sprintf("%s fixture %s failed: %v", e.Scope, e.Phase, e.Cause)
}

// Unwrap returns the callback's error.
func (e *FixtureError) Unwrap() error {
	return e.Cause
}

func setupFixture(f *fixture.Fixture, owner string) error {
	if f == nil {
		return nil
	}
	if err := f.Setup(); err != nil {
		return &FixtureError{Scope: f.Scope(), Phase: "setup", Owner: owner, Cause: err}
	}
	return nil
}

func teardownFixture(f *fixture.Fixture, owner string) error {
	if f == nil {
		return nil
	}
	if err := f.Teardown(); err != nil {
		return &FixtureError{Scope: f.Scope(), Phase: "teardown", Owner: owner, Cause: err}
	}
	return nil
}
