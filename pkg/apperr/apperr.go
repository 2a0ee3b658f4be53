package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status and a stable
// machine-readable code alongside the human message. Storage failures
// wrap their cause; predicate-construction problems never become an
// Error at all (they degrade the result set instead).
type Error struct {
	Status  int
	Code    string
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

// NotFound reports a missing resource. Soft-deleted rows use this same
// kind: they are invisible to reads and mutations.
func NotFound(resource, id string) *Error {
	msg := fmt.Sprintf("%s not found.", resource)
	if id != "" {
		msg = fmt.Sprintf("%s with ID %s not found.", resource, id)
	}
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: msg}
}

// InvalidData reports a request that failed validation.
func InvalidData(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: "invalid_data", Message: message}
}

// BadRequest reports a malformed request outside of field validation.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: message}
}

// FileValidation reports a rejected upload (type, size, decode).
func FileValidation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "file_validation", Message: message}
}

// Internal wraps a storage or processing failure. These always escalate
// to the caller; they are never recovered silently.
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal_error", Message: message, Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found Error.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Status == http.StatusNotFound
}
