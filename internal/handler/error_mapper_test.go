package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/forgo/datepoll/internal/database"
	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/service"
)

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing field", &model.FieldError{Field: "name", Err: model.ErrMissingField}, http.StatusBadRequest},
		{"too long", &model.FieldError{Field: "comment", Err: model.ErrFieldTooLong}, http.StatusBadRequest},
		{"bad date", fmt.Errorf("%w: %q", model.ErrBadDateFormat, "x"), http.StatusBadRequest},
		{"invalid range", model.ErrInvalidRange, http.StatusBadRequest},
		{"range too large", model.ErrRangeTooLarge, http.StatusBadRequest},
		{"invalid status", fmt.Errorf("response 0: %w", model.ErrInvalidStatus), http.StatusBadRequest},
		{"invalid item", model.ErrInvalidItem, http.StatusBadRequest},
		{"unknown date", service.ErrUnknownDate, http.StatusBadRequest},
		{"duplicate date", service.ErrDuplicateDate, http.StatusBadRequest},
		{"event not found", service.ErrEventNotFound, http.StatusNotFound},
		{"no candidate dates", service.ErrNoCandidateDates, http.StatusNotFound},
		{"query failure", fmt.Errorf("failed to replace responses: %w", database.ErrQuery), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"already mapped", model.NewRateLimitError(3), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := MapServiceError(tt.err)
			if resp.Status != tt.status {
				t.Errorf("expected %d, got %d (%s)", tt.status, resp.Status, resp.Message)
			}
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	t.Parallel()

	if resp := MapServiceError(nil); resp != nil {
		t.Errorf("expected nil, got %v", resp)
	}
}

func TestMapServiceError_ValidationKeepsMessage(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("response 2: %w: 2024-01-09", service.ErrUnknownDate)
	if resp := MapServiceError(err); resp.Message != err.Error() {
		t.Errorf("expected %q, got %q", err.Error(), resp.Message)
	}
}

func TestMapServiceError_InternalHidesCause(t *testing.T) {
	t.Parallel()

	resp := MapServiceError(fmt.Errorf("insert responses: %w", database.ErrQuery))
	if resp.Message != "An unexpected error occurred" {
		t.Errorf("expected generic message, got %q", resp.Message)
	}
}
