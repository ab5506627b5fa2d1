package assertion

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Equal records a pass iff expected and actual are equal. Floating-point
// kinds pass when |expected-actual| ≤ abs or ≤ rel·max(|expected|,|actual|);
// every other type must match exactly. Tolerances default to zero.
func Equal[T comparable](e *Engine, expected, actual T, opts ...Option) bool {
	o := e.resolve(opts)
	if equal(expected, actual, o) {
		e.pass(o, fmt.Sprintf("values are equal (%s == %s)", render(expected), render(actual)))
		return true
	}
	e.fail(o, fmt.Sprintf("values are not equal (%s != %s)", render(expected), render(actual)))
	return false
}

// NotEqual records a pass iff Equal's rule would fail.
func NotEqual[T comparable](e *Engine, expected, actual T, opts ...Option) bool {
	o := e.resolve(opts)
	if !equal(expected, actual, o) {
		e.pass(o, fmt.Sprintf("values are not equal (%s != %s)", render(expected), render(actual)))
		return true
	}
	e.fail(o, fmt.Sprintf("values are equal (%s == %s)", render(expected), render(actual)))
	return false
}

// EqualInt is the integer form used by the flat boundary.
func (e *Engine) EqualInt(expected, actual int, opts ...Option) bool {
	return Equal(e, expected, actual, opts...)
}

// EqualFloat64 is the double-precision form used by the flat boundary.
func (e *Engine) EqualFloat64(expected, actual float64, opts ...Option) bool {
	return Equal(e, expected, actual, opts...)
}

// EqualFloat32 is the single-precision form used by the flat boundary.
func (e *Engine) EqualFloat32(expected, actual float32, opts ...Option) bool {
	return Equal(e, expected, actual, opts...)
}

// EqualString is the string form used by the flat boundary.
func (e *Engine) EqualString(expected, actual string, opts ...Option) bool {
	return Equal(e, expected, actual, opts...)
}

// NotEqualInt negates EqualInt.
func (e *Engine) NotEqualInt(expected, actual int, opts ...Option) bool {
	return NotEqual(e, expected, actual, opts...)
}

// NotEqualFloat64 negates EqualFloat64.
func (e *Engine) NotEqualFloat64(expected, actual float64, opts ...Option) bool {
	return NotEqual(e, expected, actual, opts...)
}

// NotEqualFloat32 negates EqualFloat32.
func (e *Engine) NotEqualFloat32(expected, actual float32, opts ...Option) bool {
	return NotEqual(e, expected, actual, opts...)
}

// NotEqualString negates EqualString.
func (e *Engine) NotEqualString(expected, actual string, opts ...Option) bool {
	return NotEqual(e, expected, actual, opts...)
}

func equal[T comparable](expected, actual T, o callOptions) bool {
	ev := reflect.ValueOf(expected)
	switch ev.Kind() {
	case reflect.Float32, reflect.Float64:
		return withinTolerance(ev.Float(), reflect.ValueOf(actual).Float(), o.absTol, o.relTol)
	}
	return expected == actual
}

// withinTolerance is the shared closeness rule. NaN is never close to
// anything, including itself.
func withinTolerance(expected, actual, abs, rel float64) bool {
	diff := math.Abs(expected - actual)
	if diff <= abs {
		return true
	}
	return diff <= rel*math.Max(math.Abs(expected), math.Abs(actual))
}

// render produces the textual form used in assertion messages.
func render(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = render(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Invalid:
		return "<nil>"
	}
	return fmt.Sprint(v)
}
