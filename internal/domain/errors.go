package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so callers can react without matching
// on message text. Every error crossing the service boundary carries a kind;
// the HTTP layer maps kinds onto status codes.
type ErrorKind string

const (
	// KindValidation: malformed or missing input.
	KindValidation ErrorKind = "validation"
	// KindState: the operation is illegal in the entity's current
	// lifecycle state.
	KindState ErrorKind = "state"
	// KindConflict: the resource was claimed or changed concurrently.
	KindConflict ErrorKind = "conflict"
	// KindAuthorization: the actor lacks the required role or does not
	// own the resource.
	KindAuthorization ErrorKind = "authorization"
	// KindNotFound: the referenced row does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindInfrastructure: the persistence store or another collaborator
	// failed; the caller may retry.
	KindInfrastructure ErrorKind = "infrastructure"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Authorizationf(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Infrastructure wraps a store or driver failure under KindInfrastructure.
func Infrastructure(op string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Message: op + " failed", Err: err}
}

// KindOf returns the kind of err, or KindInfrastructure for errors that did
// not originate in the domain layer.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
