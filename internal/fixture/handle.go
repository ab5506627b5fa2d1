package fixture

import "fmt"

// Handle is an opaque, non-owning reference to caller memory.
//
// Foreign callers hand over a raw address together with a declared shape and
// size; Go callers hand over an arbitrary value. Neither form is ever
// dereferenced here. The zero Handle is the null handle.
type Handle struct {
	addr  uintptr
	value any
	shape string
	size  uintptr
}

// NewHandle wraps a Go value. A nil value yields the null handle.
func NewHandle(v any) Handle {
	if v == nil {
		return Handle{}
	}
	return Handle{value: v, shape: fmt.Sprintf("%T", v)}
}

// RawHandle wraps foreign memory at addr. shape is a caller-declared type
// tag (for example "real(8)" or "type(particle)") and size the byte length
// of the region, zero when unknown. A zero addr yields the null handle.
func RawHandle(addr uintptr, shape string, size uintptr) Handle {
	if addr == 0 {
		return Handle{}
	}
	return Handle{addr: addr, shape: shape, size: size}
}

// IsNil reports whether h refers to nothing.
func (h Handle) IsNil() bool {
	return h.addr == 0 && h.value == nil
}

// Addr returns the raw address for foreign handles, zero otherwise.
func (h Handle) Addr() uintptr { return h.addr }

// Value returns the wrapped Go value, nil for foreign handles.
func (h Handle) Value() any { return h.value }

// Shape returns the declared shape tag.
func (h Handle) Shape() string { return h.shape }

// Size returns the declared byte size of a foreign region.
func (h Handle) Size() uintptr { return h.size }

// String implements fmt.Stringer.
func (h Handle) String() string {
	switch {
	case h.IsNil():
		return "handle(nil)"
	case h.value != nil:
		return fmt.Sprintf("handle(%s)", h.shape)
	default:
		return fmt.Sprintf("handle(%s@%#x, %d bytes)", h.shape, h.addr, h.size)
	}
}

// As returns the Go value wrapped by h as a T.
// The second result is false for null, foreign or differently-typed handles.
func As[T any](h Handle) (T, bool) {
	v, ok := h.value.(T)
	return v, ok
}
