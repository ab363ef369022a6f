// Package apierr defines the error taxonomy surfaced by the financial
// API. Every error carries an HTTP status and a short machine-readable
// code; internal detail never crosses the boundary.
package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Code    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Unauthorized() *Error {
	return &Error{Code: "UNAUTHORIZED", Status: http.StatusUnauthorized, Message: "missing or invalid credentials"}
}

func Forbidden() *Error {
	return &Error{Code: "FORBIDDEN", Status: http.StatusForbidden, Message: "admin role required"}
}

func InvalidDateRange(msg string) *Error {
	return &Error{Code: "INVALID_DATE_RANGE", Status: http.StatusBadRequest, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: msg}
}

// Internal wraps a data-source or other unexpected failure. The cause is
// kept for operator logs only; the serialized message stays generic.
func Internal(cause error) *Error {
	return &Error{Code: "INTERNAL_ERROR", Status: http.StatusInternalServerError, Message: "internal error", cause: cause}
}
