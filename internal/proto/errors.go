package proto

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches any *DecodeError.
	ErrDecode = errors.New("decode message")
	// ErrBadMessageType matches any *BadMessageTypeError.
	ErrBadMessageType = errors.New("bad message type")
)

// DecodeError reports an inbound frame that is not valid JSON or lacks a
// field its type requires.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// BadMessageTypeError reports an inbound frame whose type is missing or unknown.
type BadMessageTypeError struct {
	Type string
}

func (e *BadMessageTypeError) Error() string {
	return fmt.Sprintf("bad message: %s", e.Type)
}

func (e *BadMessageTypeError) Is(target error) bool { return target == ErrBadMessageType }
