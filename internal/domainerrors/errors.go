// Package domainerrors defines the typed failures returned by services.
// Handlers map the Code of an error onto an HTTP status and problem type.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain failure
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeBadRequest Code = "bad_request"
	CodeInternal   Code = "internal_error"
)

// HTTPStatus returns the status code a handler responds with for c
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure with a human-readable message.
// Err holds the underlying cause, if any; it is never shown to clients.
type Error struct {
	Code    Code
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

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies err under code with a message
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in err's chain is a domain error with code
func HasCode(err error, code Code) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// CodeOf returns the code of the first domain error in err's chain.
// Unclassified errors are internal.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message for err. Internal failures
// get a generic message so causes do not leak.
func MessageOf(err error) string {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return "an unexpected error occurred"
	}
	if domainErr.Code == CodeInternal {
		return "an unexpected error occurred"
	}
	return domainErr.Message
}
