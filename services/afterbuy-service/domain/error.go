package domain

import (
	"errors"
	"net/http"
	"strings"
)

// Error types with HTTP status codes
type AppError struct {
	Message string
	Code    int
	// Details maps a field to its problem, used for validation errors
	Details map[string]string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError with the same code and message, so errors built
// with details still match the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// Custom error types
var (
	ErrInvalidQuery = &AppError{
		Message: "invalid query",
		Code:    http.StatusUnprocessableEntity,
	}
	ErrUpstreamUnavailable = &AppError{
		Message: "afterbuy is unavailable",
		Code:    http.StatusBadGateway,
	}
	ErrUpstreamRejected = &AppError{
		Message: "afterbuy rejected the call",
		Code:    http.StatusBadGateway,
	}
	ErrOrderNotFound = &AppError{
		Message: "order not found",
		Code:    http.StatusNotFound,
	}
	ErrSyncInProgress = &AppError{
		Message: "a sync pass is already running",
		Code:    http.StatusConflict,
	}
)

// NewInvalidQueryError returns ErrInvalidQuery carrying field details
func NewInvalidQueryError(fields map[string]string) *AppError {
	return &AppError{
		Message: ErrInvalidQuery.Message,
		Code:    ErrInvalidQuery.Code,
		Details: fields,
	}
}

// NewUpstreamRejectedError returns ErrUpstreamRejected with the remote messages
func NewUpstreamRejectedError(messages []string) *AppError {
	if len(messages) == 0 {
		return ErrUpstreamRejected
	}
	return &AppError{
		Message: ErrUpstreamRejected.Message,
		Code:    ErrUpstreamRejected.Code,
		Details: map[string]string{"afterbuy": strings.Join(messages, "; ")},
	}
}

// Standard error types for repositories
var (
	ErrNotFound = errors.New("not found")
)
