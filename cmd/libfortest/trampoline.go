package main

/*
// Call foreign callbacks through void* so cgo never sees function-pointer
// types at the call site.
typedef void (*fortest_fixture_fn)(void*);
typedef void (*fortest_test_fn)(void*, void*, void*);
typedef void (*fortest_param_fn)(void*, void*, void*, int);

static inline void fortest_call_fixture(void* fn, void* args) {
	((fortest_fixture_fn)fn)(args);
}

static inline void fortest_call_test(void* fn, void* t, void* s, void* ss) {
	((fortest_test_fn)fn)(t, s, ss);
}

static inline void fortest_call_param(void* fn, void* t, void* s, void* ss, int idx) {
	((fortest_param_fn)fn)(t, s, ss, (int)idx);
}
*/
import "C"

import (
	"unsafe"

	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/runner"
)

// shapeCPointer tags handles built from foreign void* arguments.
const shapeCPointer = "c_ptr"

func handleOf(p unsafe.Pointer) fixture.Handle {
	return fixture.RawHandle(uintptr(p), shapeCPointer, 0)
}

// ptr converts a foreign handle back to the address the caller passed in.
// The memory is C-owned, so the conversion does not hide a Go pointer.
func ptr(h fixture.Handle) unsafe.Pointer {
	return unsafe.Pointer(h.Addr())
}

// fixtureFunc wraps a C setup/teardown pointer. NULL means no callback.
func fixtureFunc(fn unsafe.Pointer) fixture.Func {
	if fn == nil {
		return nil
	}
	return func(args fixture.Handle) error {
		C.fortest_call_fixture(fn, ptr(args))
		return nil
	}
}

func testFunc(fn unsafe.Pointer) runner.TestFunc {
	return func(test, suite, session fixture.Handle) error {
		C.fortest_call_test(fn, ptr(test), ptr(suite), ptr(session))
		return nil
	}
}

func paramFunc(fn unsafe.Pointer) runner.ParamFunc {
	return func(test, suite, session fixture.Handle, idx int) error {
		C.fortest_call_param(fn, ptr(test), ptr(suite), ptr(session), C.int(idx))
		return nil
	}
}
