// Package fixture implements scoped setup/teardown pairs bound to opaque
// argument handles.
//
// A Fixture never owns the memory behind its Handle. The caller that
// registered it (usually foreign code across the C boundary) allocates and
// frees that memory; the fixture only passes the handle back to the
// setup/teardown callbacks and to test bodies.
//
// # Scopes
//
//   - Test: set up and torn down around every test (and every index of a
//     parameterized test).
//   - Suite: set up once before a suite runs and torn down after it.
//   - Session: set up once for the whole session.
package fixture
