package services

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure
type Kind int

const (
	// KindAuth means there is no valid session
	KindAuth Kind = iota + 1
	// KindForbidden means the caller acted on someone else's resource
	KindForbidden
	KindValidation
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is the typed failure returned by every operation. Message is safe to
// show to the caller; Err is the optional underlying cause.
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

func AuthError(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func ForbiddenError(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }
func ValidationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func NotFoundError(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }

// ConflictError wraps the cause, usually repositories.ErrDuplicate
func ConflictError(msg string, cause error) error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}

// KindOf returns the kind of a typed error, or 0 for anything else
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsAuth reports whether err is an auth failure, including acting on another
// user's resource
func IsAuth(err error) bool {
	k := KindOf(err)
	return k == KindAuth || k == KindForbidden
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
