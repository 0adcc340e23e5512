// Package apperr defines the error taxonomy the chat pipeline returns to
// its transport handlers. Handlers map kinds to HTTP status codes; only
// LimitReached, RateLimited and QuotaExceeded carry user-displayable
// messages, everything else renders a generic apology.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindLimitReached
	KindRateLimited
	KindQuotaExceeded
	KindUpstream
)

type Error struct {
	Kind    Kind
	Message string // user-facing for LimitReached/RateLimited/QuotaExceeded
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func LimitReached(message string) *Error {
	return New(KindLimitReached, message)
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// UserMessage returns the message safe to show an end user.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindLimitReached, KindRateLimited, KindQuotaExceeded, KindValidation, KindNotFound:
			return ae.Message
		}
	}
	return "Sorry, something went wrong. Please try again."
}

// Is reports whether err belongs to the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
