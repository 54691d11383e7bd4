package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Validation errors returned by every write path. They map to 400.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrFieldTooLong  = errors.New("field exceeds maximum length")
	ErrBadDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange  = errors.New("start date cannot be after end date")
	ErrRangeTooLarge = errors.New("date range is too large")
	ErrInvalidStatus = errors.New("status must be 0, 1, 2 or 3")
	ErrInvalidItem   = errors.New("invalid response item (missing date or status)")
)

// FieldError names the request field a validation error applies to.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the body of every failed request: {"error": "..."}.
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *ErrorResponse) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(detail string) *ErrorResponse {
	return &ErrorResponse{Status: http.StatusBadRequest, Message: detail}
}

func NewNotFoundError(resource string) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(detail string) *ErrorResponse {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ErrorResponse{Status: http.StatusInternalServerError, Message: detail}
}

func NewRateLimitError(retryAfter int) *ErrorResponse {
	return &ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
	}
}
