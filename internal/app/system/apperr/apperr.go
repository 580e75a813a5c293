// Package apperr defines the error kinds shared by the consultation API
// handlers and the client that calls them.
//
// Each kind maps to exactly one HTTP status, so a handler can turn an
// error into a response with StatusOf and a client can turn a response
// back into the same kind with FromStatus.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure by who has to act on it.
type Kind int

const (
	// KindInfrastructure covers config, connection and unexpected store
	// failures. It is the zero value so unknown errors land here.
	KindInfrastructure Kind = iota
	KindValidation
	KindNotFound
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "infrastructure"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to a client;
// Err is the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed input.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound reports that no matching record exists.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// MethodNotAllowed reports a request with the wrong HTTP verb.
func MethodNotAllowed(msg string) error {
	return &Error{Kind: KindMethodNotAllowed, Message: msg}
}

// Infrastructure wraps an unexpected failure. msg is what the client sees.
func Infrastructure(msg string, err error) error {
	return &Error{Kind: KindInfrastructure, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInfrastructure when err is not
// classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// PublicMessage returns the client-safe message for err. Unclassified
// errors never leak their text.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return http.StatusText(StatusOf(err))
}

// FromStatus rebuilds a classified error from an HTTP response.
func FromStatus(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest:
		return Validation(msg)
	case http.StatusNotFound:
		return NotFound(msg)
	case http.StatusMethodNotAllowed:
		return MethodNotAllowed(msg)
	default:
		return &Error{Kind: KindInfrastructure, Message: msg}
	}
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return err != nil && KindOf(err) == KindNotFound }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return err != nil && KindOf(err) == KindValidation }
