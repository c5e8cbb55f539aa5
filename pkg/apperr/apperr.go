// Package apperr defines the error value used across all service operations:
// an HTTP-meaningful status, a stable machine code, and a human message,
// optionally wrapping an underlying cause.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-distinguishable error codes.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeRepository = "REPOSITORY_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error carries an HTTP status and message for a failed operation.
// Every failure that reaches the handler boundary is one of these;
// anything else is coerced to a 500 by From.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error // underlying cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest signals missing or malformed required input.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// NotFound signals that the referenced entity does not exist.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// Upstream signals a failure in an external collaborator (media store, mail relay).
func Upstream(message string, err error) *Error {
	return &Error{Status: http.StatusBadGateway, Code: CodeUpstream, Message: message, Err: err}
}

// Repository signals a persistence-layer failure.
func Repository(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeRepository, Message: message, Err: err}
}

// Internal signals an unexpected server-side failure.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// From coerces any error into an *Error. Errors that already carry a status
// pass through unchanged; everything else becomes a generic 500 so that no
// failure leaves the boundary without an HTTP status.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}
