// Package apperrors defines the error taxonomy shared by all request-path
// services. Controllers map these to HTTP status codes; everything else is
// treated as a persistence failure.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindValidation covers missing or malformed request fields.
	KindValidation Kind = iota
	// KindSlotConflict means the requested interval overlaps an existing reservation.
	KindSlotConflict
	// KindNotFound means the referenced entity is absent or not visible to the caller.
	KindNotFound
	// KindInvalidState means the operation is not permitted from the entity's current state.
	KindInvalidState
	// KindInconsistentState means the order/schedule dual-write invariant was
	// violated and could not be repaired. Always logged distinctly.
	KindInconsistentState
	// KindPersistence is a generic store I/O failure.
	KindPersistence
)

// Error carries a kind for HTTP mapping plus a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
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

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func SlotConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindSlotConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func InconsistentState(message string, err error) *Error {
	return &Error{Kind: KindInconsistentState, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to persistence.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HTTPStatus maps an error chain to the status code controllers should return.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindSlotConflict, KindInvalidState:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the caller-facing message, hiding internals for 5xx kinds.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindInconsistentState, KindPersistence:
			return "internal error"
		default:
			return appErr.Message
		}
	}
	return "internal error"
}
