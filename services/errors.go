package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means the caller sent something that can never
	// succeed; nothing was sent to the gateway or stored.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrOrderNotFound means no local order carries the gateway order id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderOwnerMismatch means the order exists but was created by
	// another user.
	ErrOrderOwnerMismatch = errors.New("order belongs to another user")
)

// PersistenceError wraps any storage failure. Whatever the failing
// transaction had written has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}
