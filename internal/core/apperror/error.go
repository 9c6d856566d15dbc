// Package apperror provides structured error handling for API responses.
// Every error that reaches the HTTP layer is rendered from an AppError.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal      = "INTERNAL_ERROR"
	CodeUpstreamQuery = "UPSTREAM_QUERY_FAILURE"

	// Validation errors (400)
	CodeInvalidFilter = "INVALID_FILTER"

	// Authentication errors (401)
	CodeUnauthorized = "UNAUTHORIZED"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type of the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (offending parameter, raw value)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Factory functions ---

// NewInvalidFilter creates a filter validation error (400) for one query parameter.
func NewInvalidFilter(param, message string) *AppError {
	return &AppError{
		Code:       CodeInvalidFilter,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"param": param},
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewUpstreamQuery wraps a database failure (500). The cause is logged, never rendered.
func NewUpstreamQuery(report string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstreamQuery,
		Message:    "Report query failed",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"report": report},
		Err:        err,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(path string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    "Route not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"path": path},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
