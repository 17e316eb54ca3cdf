package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the ledger engine can return.
// Transport layers map kinds to status codes; the engine never returns
// an untyped failure for a rejected transition.
type ErrorKind string

const (
	KindUnauthorized        ErrorKind = "unauthorized"
	KindNotFound            ErrorKind = "not_found"
	KindDuplicate           ErrorKind = "duplicate"
	KindInvalidState        ErrorKind = "invalid_state"
	KindInvalidConfig       ErrorKind = "invalid_config"
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindInsufficientBalance ErrorKind = "insufficient_balance"
	KindExpired             ErrorKind = "expired"
)

// Error is a typed ledger failure. Validation happens before any write,
// so an Error always means the transition was rejected whole.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match on kind sentinels created with NewError(kind, "").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, unwrapping as needed.
// Returns "" when err carries no ledger kind.
func KindOf(err error) ErrorKind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

func ErrUnauthorized(format string, args ...any) *Error {
	return NewError(KindUnauthorized, format, args...)
}

func ErrNotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func ErrDuplicate(format string, args ...any) *Error {
	return NewError(KindDuplicate, format, args...)
}

func ErrInvalidState(format string, args ...any) *Error {
	return NewError(KindInvalidState, format, args...)
}

func ErrInvalidConfig(format string, args ...any) *Error {
	return NewError(KindInvalidConfig, format, args...)
}

func ErrInvalidArgument(format string, args ...any) *Error {
	return NewError(KindInvalidArgument, format, args...)
}

func ErrInsufficientBalance(format string, args ...any) *Error {
	return NewError(KindInsufficientBalance, format, args...)
}

func ErrExpired(format string, args ...any) *Error {
	return NewError(KindExpired, format, args...)
}
