package admin

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

var (
	// ErrBusy is returned when a mutating request is already in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	ErrInvalidState = errors.New("operation not allowed in current state")
)

// A ValidationError is a client-side error detected before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation returns true if err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// A Guard is a single-slot request guard: only one mutating request may be in flight.
type Guard struct {
	busy atomic.Bool
}

// Acquire takes the slot. It returns false if the slot is already taken.
func (g *Guard) Acquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release frees the slot.
func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy returns true while a request is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
