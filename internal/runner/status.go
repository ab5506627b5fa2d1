package runner

import "fmt"

// Status is the outcome of a test or of one parameter index.
type Status int

const (
	// StatusNone means not run yet.
	StatusNone Status = iota
	// StatusPass means the body completed with no failed assertions.
	StatusPass
	// StatusFail means a failed assertion or a body error.
	StatusFail
)

// String returns NONE, PASS or FAIL.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Aggregate folds several statuses into one: FAIL if any failed, else PASS
// if any passed, else NONE.
func Aggregate(statuses ...Status) Status {
	sawPass := false
	for _, st := range statuses {
		switch st {
		case StatusFail:
			return StatusFail
		case StatusPass:
			sawPass = true
		}
	}
	if sawPass {
		return StatusPass
	}
	return StatusNone
}

func statusFromFailures(failed int) Status {
	if failed == 0 {
		return StatusPass
	}
	return StatusFail
}
