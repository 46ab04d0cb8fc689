// Package apierr is the canonical error type for the finbook API.
//
// Services return *Error values directly for business-rule violations.
// Errors that arrive as free text from lower layers are translated by the
// classifiers in classifier.go. Either way, handlers always end up with an
// Error carrying an HTTP status, a machine-readable code and a client-safe
// message.
package apierr

import "net/http"

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries everything needed to render an API error response.
// Cause is kept for server-side logging only and never serialized.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Details any    `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

func New(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// WithDetails returns a copy carrying field-level or structured details.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCause returns a copy carrying the underlying error for logging.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.Cause = cause
	return &clone
}

func Unauthenticated() *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, "Authentication required")
}

func Validation(details []FieldError) *Error {
	err := New(http.StatusBadRequest, CodeValidationError, "Request validation failed")
	err.Details = details
	return err
}

func Internal() *Error {
	return New(http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
}

// CategoryInUseDetails carries the number of active transactions blocking a
// category delete as a typed field rather than prose.
type CategoryInUseDetails struct {
	TransactionCount int `json:"transaction_count"`
}
