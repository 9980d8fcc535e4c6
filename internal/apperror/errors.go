// Package apperror classifies failures so handlers can pick a status code and a
// user-facing message without inspecting driver errors themselves.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindStore Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindTooLarge
	KindIntegrity
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindTooLarge:
		return "too_large"
	case KindIntegrity:
		return "integrity"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "store"
	}
}

// Error carries the user-visible Message; Err is for the logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func Store(message string, err error) *Error { return Wrap(KindStore, message, err) }

// KindOf reports the kind of err. Unclassified errors count as store failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// MessageOf returns the user-visible message, or fallback for unclassified errors.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

func Status(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindIntegrity:
		return http.StatusBadRequest
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
