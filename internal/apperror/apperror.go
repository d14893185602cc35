// Package apperror carries an HTTP status alongside a client-safe message so
// that usecases can decide how a failure is reported without importing gin.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
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

// Is matches another *Error with the same status and message, so package-level
// sentinels built with New work with errors.Is even after Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// Wrap returns a copy of e that keeps err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Status: e.Status, Message: e.Message, Err: err}
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err. Errors that did not
// come through this package are reported generically.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
