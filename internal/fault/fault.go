// Package fault carries the error taxonomy shared by every command and
// query: a machine-checkable kind plus a human-readable reason.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// Validation covers malformed or missing input. Nothing was mutated.
	Validation Kind = "validation_error"
	// NotFound covers a referenced account, order, complaint or
	// subscription that does not exist. Nothing was mutated.
	NotFound Kind = "not_found"
	// Conflict covers a violated domain precondition, e.g. cancelling a
	// non-pending order. Nothing was mutated.
	Conflict Kind = "conflict"
	// Persistence covers a durable write that failed after an in-memory
	// mutation. The store rolls the mutation back before returning it.
	Persistence Kind = "persistence_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

func Persistencef(err error, format string, args ...any) *Error {
	return &Error{Kind: Persistence, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err, or "" if err does not carry one.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
