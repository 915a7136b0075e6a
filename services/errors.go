package services

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule rejection. Rejections are expected
// control flow and are surfaced to the caller, never logged as errors.
type Kind int

const (
	KindNotFound Kind = iota
	KindTooEarly
	KindTooLate
	KindNotAvailable
	KindLimitExceeded
	KindAlreadyExists
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTooEarly:
		return "too_early"
	case KindTooLate:
		return "too_late"
	case KindNotAvailable:
		return "not_available"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindAlreadyExists:
		return "already_exists"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error carries the offending field and a human-readable reason so the
// caller can render a precise message.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Reason  string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s: %s)", e.Message, e.Field, e.Reason)
}

func NotFound(message, field string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Field: field, Reason: "not existing"}
}

func TooEarly(message, field string) *Error {
	return &Error{Kind: KindTooEarly, Message: message, Field: field, Reason: "too early"}
}

func TooLate(message, field string) *Error {
	return &Error{Kind: KindTooLate, Message: message, Field: field, Reason: "too late"}
}

func NotAvailable(message, field string) *Error {
	return &Error{Kind: KindNotAvailable, Message: message, Field: field, Reason: "not available"}
}

func LimitExceeded(message, field string) *Error {
	return &Error{Kind: KindLimitExceeded, Message: message, Field: field, Reason: "limit exceeded"}
}

func AlreadyExists(message, field string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message, Field: field, Reason: "already exists"}
}

func Conflict(message, field string) *Error {
	return &Error{Kind: KindConflict, Message: message, Field: field, Reason: "conflict"}
}

// IsKind reports whether err is a business rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
