// Package errors provides a coded error type with wrapping and field metadata
package errors

// Import as perr to keep the standard library name free

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-facing error class; values are stable on the wire
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidInput is for calculator inputs outside the engine's domain
	ErrorCodeInvalidInput

	// ErrorCodeValidation is for request payloads failing validation
	ErrorCodeValidation

	// ErrorCodeJSON is for malformed request bodies
	ErrorCodeJSON

	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound

	// ErrorCodeConflict is for requests not allowed in the current state
	ErrorCodeConflict

	// ErrorCodeUnavailable is for a collaborator that cannot be reached
	ErrorCodeUnavailable

	// ErrorCodeMethodNotAllowed is for a known route hit with the wrong verb
	ErrorCodeMethodNotAllowed
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidInput:
		return "INVALID_INPUT"
	case ErrorCodeValidation:
		return "VALIDATION"
	case ErrorCodeJSON:
		return "INVALID_JSON"
	case ErrorCodeNotFound:
		return "NOT_FOUND"
	case ErrorCodeConflict:
		return "CONFLICT"
	case ErrorCodeUnavailable:
		return "UNAVAILABLE"
	case ErrorCodeMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatusCode maps an ErrorCode to an HTTP status
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidInput:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a message, a code, an optional field and the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the JSON form returned by the API
type Wire struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// New creates a coded error
func New(code ErrorCode, msg string) *Error { return &Error{code: code, msg: msg} }

// Newf creates a coded error with a formatted message
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to cause
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{orig: cause, code: code, msg: msg}
}

// WithField returns a copy of err carrying field; foreign errors are wrapped as unknown
func WithField(err error, field string) *Error {
	if e, ok := As(err); ok {
		cp := *e
		cp.field = field
		return &cp
	}
	return &Error{orig: err, code: ErrorCodeUnknown, msg: "error", field: field}
}

// As extracts an *Error from the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in the chain, or ErrorCodeUnknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// ToWire converts any error into its wire payload
func ToWire(err error) Wire {
	if e, ok := As(err); ok {
		return Wire{
			Status:  HTTPStatusCode(e.code),
			Code:    e.code.String(),
			Message: e.Error(),
			Field:   e.field,
		}
	}
	return Wire{
		Status:  http.StatusInternalServerError,
		Code:    ErrorCodeUnknown.String(),
		Message: "internal error",
	}
}

// Convenience constructors

// InvalidInputf is an ErrorCodeInvalidInput error
func InvalidInputf(format string, args ...any) *Error {
	return Newf(ErrorCodeInvalidInput, format, args...)
}

// NotFoundf is an ErrorCodeNotFound error
func NotFoundf(format string, args ...any) *Error {
	return Newf(ErrorCodeNotFound, format, args...)
}

// Conflictf is an ErrorCodeConflict error
func Conflictf(format string, args ...any) *Error {
	return Newf(ErrorCodeConflict, format, args...)
}

// JSONErrf is an ErrorCodeJSON error
func JSONErrf(format string, args ...any) *Error {
	return Newf(ErrorCodeJSON, format, args...)
}

// Validationf is an ErrorCodeValidation error
func Validationf(format string, args ...any) *Error {
	return Newf(ErrorCodeValidation, format, args...)
}
