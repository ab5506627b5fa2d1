// libfortest builds the fortest runtime as a C shared library:
//
//	go build -buildmode=c-shared -o libfortest.so ./cmd/libfortest
//
// Every exported function forwards to the process-wide bridge context and
// never returns an error to C: internal failures print a
// "[FORTEST FATAL]" line and terminate the process.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/amstokely/fortest/internal/bridge"
)

func main() {}

//export c_register_test_suite
func c_register_test_suite(name *C.char) {
	bridge.Default().RegisterSuite(C.GoString(name))
}

//export c_register_fixture
func c_register_fixture(suiteName *C.char, setup, teardown, args unsafe.Pointer, scope *C.char) {
	bridge.Default().RegisterFixture(
		C.GoString(suiteName),
		fixtureFunc(setup),
		fixtureFunc(teardown),
		handleOf(args),
		C.GoString(scope),
	)
}

//export c_register_test
func c_register_test(suiteName, testName *C.char, test unsafe.Pointer) {
	bridge.Default().RegisterTest(C.GoString(suiteName), C.GoString(testName), testFunc(test))
}

//export c_register_parameterized_test
func c_register_parameterized_test(suiteName, testName *C.char, test unsafe.Pointer, indices *C.int, count C.int) {
	var idx []int
	if indices != nil && count > 0 {
		for _, v := range unsafe.Slice(indices, int(count)) {
			idx = append(idx, int(v))
		}
	}
	bridge.Default().RegisterParameterizedTest(C.GoString(suiteName), C.GoString(testName), paramFunc(test), idx)
}

//export c_run_test_session
func c_run_test_session() {
	bridge.Default().RunSession()
}

//export c_get_test_suite_status
func c_get_test_suite_status(name *C.char) C.int {
	return C.int(bridge.Default().SuiteStatus(C.GoString(name)))
}

//export c_assert_true
func c_assert_true(condition, verbosity C.int) {
	bridge.Default().AssertTrue(condition != 0, int(verbosity))
}

//export c_assert_false
func c_assert_false(condition, verbosity C.int) {
	bridge.Default().AssertFalse(condition != 0, int(verbosity))
}

//export c_assert_equal_int
func c_assert_equal_int(expected, actual, verbosity C.int) {
	bridge.Default().AssertEqualInt(int(expected), int(actual), int(verbosity))
}

//export c_assert_equal_double
func c_assert_equal_double(expected, actual, absTol, relTol C.double, verbosity C.int) {
	bridge.Default().AssertEqualDouble(float64(expected), float64(actual), float64(absTol), float64(relTol), int(verbosity))
}

//export c_assert_equal_float
func c_assert_equal_float(expected, actual, absTol, relTol C.float, verbosity C.int) {
	bridge.Default().AssertEqualFloat(float32(expected), float32(actual), float32(absTol), float32(relTol), int(verbosity))
}

//export c_assert_equal_string
func c_assert_equal_string(expected, actual *C.char, verbosity C.int) {
	bridge.Default().AssertEqualString(C.GoString(expected), C.GoString(actual), int(verbosity))
}

//export c_assert_not_equal_int
func c_assert_not_equal_int(expected, actual, verbosity C.int) {
	bridge.Default().AssertNotEqualInt(int(expected), int(actual), int(verbosity))
}

//export c_assert_not_equal_double
func c_assert_not_equal_double(expected, actual, absTol, relTol C.double, verbosity C.int) {
	bridge.Default().AssertNotEqualDouble(float64(expected), float64(actual), float64(absTol), float64(relTol), int(verbosity))
}

//export c_assert_not_equal_float
func c_assert_not_equal_float(expected, actual, absTol, relTol C.float, verbosity C.int) {
	bridge.Default().AssertNotEqualFloat(float32(expected), float32(actual), float32(absTol), float32(relTol), int(verbosity))
}

//export c_assert_not_equal_string
func c_assert_not_equal_string(expected, actual *C.char, verbosity C.int) {
	bridge.Default().AssertNotEqualString(C.GoString(expected), C.GoString(actual), int(verbosity))
}
