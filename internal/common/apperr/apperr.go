// Package apperr carries the error kinds the API distinguishes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidInput Kind = "INVALID_INPUT"
	KindNotFound     Kind = "NOT_FOUND"
	KindUnavailable  Kind = "UNAVAILABLE"
	// KindPartialDataDefault marks a field that could not be read and was replaced by a neutral value.
	// It is reported, never returned to clients.
	KindPartialDataDefault Kind = "PARTIAL_DATA_DEFAULT"
)

// Error is an application error with a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unavailable wraps a datastore failure. message must be generic; the cause is kept for logs only.
func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

func PartialDataDefault(message string) *Error {
	return &Error{Kind: KindPartialDataDefault, Message: message}
}

// KindOf returns the kind of the first *Error in the chain, or KindUnavailable for anything else
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnavailable
}

// HTTPStatus maps an error to its response status
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text a client may see. Unavailable errors never leak their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
