package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeMemberNotFound  = "member_not_found"
	ErrCodeSendFailed      = "send_failed"
	ErrCodeSessionClosed   = "session_closed"
	ErrCodeJokeUnavailable = "joke_unavailable"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrSendFailed      = errors.New("send failed")
	ErrSessionClosed   = errors.New("session closed")
	ErrJokeUnavailable = errors.New("joke unavailable")
)

// CoreError wraps a code, a human-readable message and the sentinel it matches.
type CoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

func coreError(code, msg string, sentinel error) *CoreError {
	return &CoreError{Code: code, Message: msg, Err: sentinel}
}

func memberNotFound(name string) *CoreError {
	return coreError(ErrCodeMemberNotFound, fmt.Sprintf("no such user: %s", name), ErrMemberNotFound)
}

func sendFailed(sessionID string, cause any) *CoreError {
	return coreError(ErrCodeSendFailed, fmt.Sprintf("send to %s failed: %v", sessionID, cause), ErrSendFailed)
}
