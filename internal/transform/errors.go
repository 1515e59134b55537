package transform

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package is an *Error whose Kind
// is one of these, so callers can branch with errors.Is.
var (
	ErrDecode    = errors.New("decode failed")
	ErrTransform = errors.New("transform failed")
	ErrConfig    = errors.New("invalid configuration")
	ErrEncode    = errors.New("encode failed")
	ErrState     = errors.New("invalid state")
)

// Causes raised by the pipeline itself. Backend failures are wrapped as they
// come.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfBounds     = errors.New("target larger than image")
	ErrUnknownMode     = errors.New("unknown resize mode")
	ErrUnknownGravity  = errors.New("unknown gravity")
	ErrClosed          = errors.New("image closed")
	ErrNotInitialized  = errors.New("context not initialized")
	ErrBusy            = errors.New("images still open")
)

// Error is the result of a failed operation.
type Error struct {
	// Op is the operation that failed, such as "resize" or "encode".
	Op string

	// Kind is one of ErrDecode, ErrTransform, ErrConfig, ErrEncode, ErrState.
	Kind error

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the error kind, so errors.Is(err, ErrTransform) works alongside
// errors.Is(err, ErrInvalidArgument).
func (e *Error) Is(target error) bool { return target == e.Kind }
