package core

import (
	"errors"
)

var (
	// ErrContextLost signals that the driver context is gone and every
	// subsequent call will fail. Treat as unrecoverable.
	ErrContextLost = errors.New("graphics context lost")
	// ErrSpent is returned when a one-way consuming transition (such as
	// linking a program builder) is attempted a second time.
	ErrSpent   = errors.New("object already consumed")
	ErrUnknown = errors.New("unknown")
)
