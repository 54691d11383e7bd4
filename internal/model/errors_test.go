package model

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// ErrorResponse Tests
// ============================================================================

func TestErrorResponse_Error_ContainsStatusAndMessage(t *testing.T) {
	t.Parallel()

	e := NewNotFoundError("event")
	msg := e.Error()

	if !strings.Contains(msg, "404") || !strings.Contains(msg, "event not found") {
		t.Errorf("unexpected error string %q", msg)
	}
}

func TestErrorResponse_WriteJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBadRequestError("invalid input").WriteJSON(rr)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "invalid input" {
		t.Errorf("expected error field, got %v", body)
	}
	if len(body) != 1 {
		t.Errorf("expected only the error field, got %v", body)
	}
}

func TestNewInternalError_DefaultMessage(t *testing.T) {
	t.Parallel()

	e := NewInternalError("")
	if e.Status != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", e.Status)
	}
	if e.Message == "" {
		t.Error("expected a default message")
	}
}

// ============================================================================
// FieldError Tests
// ============================================================================

func TestFieldError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	err := error(&FieldError{Field: "name", Err: ErrMissingField})
	if !errors.Is(err, ErrMissingField) {
		t.Error("expected FieldError to unwrap to ErrMissingField")
	}
	if err.Error() != "missing required field: name" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNewRateLimitError(t *testing.T) {
	t.Parallel()

	e := NewRateLimitError(12)
	if e.Status != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", e.Status)
	}
	if !strings.Contains(e.Message, "12 seconds") {
		t.Errorf("expected retry hint in message, got %q", e.Message)
	}
}
