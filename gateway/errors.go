package gateway

import (
	"errors"
	"fmt"
)

// ErrTimeout is wrapped by Error when the gateway did not answer in time.
var ErrTimeout = errors.New("payment gateway timed out")

// Error is any failure talking to the payment gateway.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
