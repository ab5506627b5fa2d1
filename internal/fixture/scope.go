package fixture

import (
	"errors"
	"fmt"
)

// Scope is the lifetime tier of a fixture.
type Scope int

const (
	// ScopeTest fixtures wrap every test.
	ScopeTest Scope = iota
	// ScopeSuite fixtures wrap a whole suite run.
	ScopeSuite
	// ScopeSession fixtures wrap the whole session run.
	ScopeSession
)

// ErrUnknownScope is returned by ParseScope for unrecognised scope names.
var ErrUnknownScope = errors.New("unknown fixture scope")

// String returns the boundary spelling of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeTest:
		return "test"
	case ScopeSuite:
		return "suite"
	case ScopeSession:
		return "session"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Valid reports whether s is one of the three defined scopes.
func (s Scope) Valid() bool {
	return s >= ScopeTest && s <= ScopeSession
}

// ParseScope converts "test", "suite" or "session" into a Scope.
// Matching is exact; foreign callers are expected to pass lower-case names.
func ParseScope(name string) (Scope, error) {
	switch name {
	case "test":
		return ScopeTest, nil
	case "suite":
		return ScopeSuite, nil
	case "session":
		return ScopeSession, nil
	}
	return 0, fmt.Errorf("%w: %q (want test, suite or session)", ErrUnknownScope, name)
}
