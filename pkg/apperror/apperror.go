package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can branch without string matching.
type Kind int

const (
	// KindValidation marks malformed call arguments, rejected before any I/O.
	KindValidation Kind = iota + 1
	// KindNotFound marks a missing referenced entity (user, session, record).
	KindNotFound
	// KindBusinessRule marks a state inconsistency such as a stale version.
	KindBusinessRule
	// KindInternal marks infrastructure faults and anything unexpected.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error shape services raise.
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

func Validation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func BusinessRule(msg string) error { return &Error{Kind: KindBusinessRule, Message: msg} }

// Internal wraps an infrastructure fault, keeping the original error.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Internalize passes typed errors through unchanged and wraps everything
// else into KindInternal carrying the original message, so callers always
// see one predictable shape for unexpected faults.
func Internalize(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf reports the kind of err, defaulting to KindInternal for untyped errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }
