package graphics

import (
	"fmt"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// ErrorCode is a driver-reported error category, retrieved by polling the
// driver's sticky error flag.
type ErrorCode uint32

const (
	NoError ErrorCode = iota
	InvalidEnum
	InvalidValue
	InvalidOperation
	StackOverflow
	StackUnderflow
	OutOfMemory
	InvalidFramebufferOperation
	ContextLost
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "no error"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case StackOverflow:
		return "stack overflow"
	case StackUnderflow:
		return "stack underflow"
	case OutOfMemory:
		return "out of memory"
	case InvalidFramebufferOperation:
		return "invalid framebuffer operation"
	case ContextLost:
		return "context lost"
	}
	return "unknown error"
}

// GLError wraps a driver-reported error code with the operation that
// triggered it.
type GLError struct {
	Op   string
	Code ErrorCode
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

// Unwrap lets errors.Is recognize a lost context through the wrapper, since
// that one code invalidates every later call.
func (e *GLError) Unwrap() error {
	if e.Code == ContextLost {
		return core.ErrContextLost
	}
	return nil
}

// CheckError polls the driver's error flag and wraps anything found. Risky
// driver calls are followed by this; bind/unbind themselves are not expected
// to fail and are not checked.
func CheckError(d Driver, op string) error {
	code := d.Error()
	if code == NoError {
		return nil
	}
	return &GLError{Op: op, Code: code}
}

// errGuard runs fn and surfaces any driver error it raised.
func errGuard(d Driver, op string, fn func()) error {
	fn()
	return CheckError(d, op)
}
