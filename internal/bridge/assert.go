package bridge

import (
	"github.com/amstokely/fortest/internal/assertion"
)

// Assertion entry point names used in fatal messages.
const (
	EntryAssertTrue           = "c_assert_true"
	EntryAssertFalse          = "c_assert_false"
	EntryAssertEqualInt       = "c_assert_equal_int"
	EntryAssertEqualDouble    = "c_assert_equal_double"
	EntryAssertEqualFloat     = "c_assert_equal_float"
	EntryAssertEqualString    = "c_assert_equal_string"
	EntryAssertNotEqualInt    = "c_assert_not_equal_int"
	EntryAssertNotEqualDouble = "c_assert_not_equal_double"
	EntryAssertNotEqualFloat  = "c_assert_not_equal_float"
	EntryAssertNotEqualString = "c_assert_not_equal_string"
)

// Verbosity arguments use the boundary encoding: 0 quiet, 1 failures only,
// 2 everything.

func verbosity(v int) assertion.Option {
	return assertion.WithVerbosity(assertion.VerbosityFromInt(v))
}

// AssertTrue records a pass when cond is true.
func (c *Context) AssertTrue(cond bool, v int) {
	defer c.guard(EntryAssertTrue)
	c.engine.True(cond, verbosity(v))
}

// AssertFalse records a pass when cond is false.
func (c *Context) AssertFalse(cond bool, v int) {
	defer c.guard(EntryAssertFalse)
	c.engine.False(cond, verbosity(v))
}

// AssertEqualInt compares two integers.
func (c *Context) AssertEqualInt(expected, actual, v int) {
	defer c.guard(EntryAssertEqualInt)
	c.engine.EqualInt(expected, actual, verbosity(v))
}

// AssertEqualDouble compares two doubles within absTol or relTol.
func (c *Context) AssertEqualDouble(expected, actual, absTol, relTol float64, v int) {
	defer c.guard(EntryAssertEqualDouble)
	c.engine.EqualFloat64(expected, actual, assertion.Tolerance(absTol, relTol), verbosity(v))
}

// AssertEqualFloat compares two floats within absTol or relTol.
func (c *Context) AssertEqualFloat(expected, actual, absTol, relTol float32, v int) {
	defer c.guard(EntryAssertEqualFloat)
	c.engine.EqualFloat32(expected, actual, assertion.Tolerance(float64(absTol), float64(relTol)), verbosity(v))
}

// AssertEqualString compares two strings byte for byte.
func (c *Context) AssertEqualString(expected, actual string, v int) {
	defer c.guard(EntryAssertEqualString)
	c.engine.EqualString(expected, actual, verbosity(v))
}

// AssertNotEqualInt records a pass when the integers differ.
func (c *Context) AssertNotEqualInt(expected, actual, v int) {
	defer c.guard(EntryAssertNotEqualInt)
	c.engine.NotEqualInt(expected, actual, verbosity(v))
}

// AssertNotEqualDouble records a pass when the doubles differ by more than
// both tolerances.
func (c *Context) AssertNotEqualDouble(expected, actual, absTol, relTol float64, v int) {
	defer c.guard(EntryAssertNotEqualDouble)
	c.engine.NotEqualFloat64(expected, actual, assertion.Tolerance(absTol, relTol), verbosity(v))
}

// AssertNotEqualFloat records a pass when the floats differ by more than
// both tolerances.
func (c *Context) AssertNotEqualFloat(expected, actual, absTol, relTol float32, v int) {
	defer c.guard(EntryAssertNotEqualFloat)
	c.engine.NotEqualFloat32(expected, actual, assertion.Tolerance(float64(absTol), float64(relTol)), verbosity(v))
}

// AssertNotEqualString records a pass when the strings differ.
func (c *Context) AssertNotEqualString(expected, actual string, v int) {
	defer c.guard(EntryAssertNotEqualString)
	c.engine.NotEqualString(expected, actual, verbosity(v))
}
