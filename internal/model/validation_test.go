package model

import (
	"errors"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

// ============================================================================
// RequireFields Tests - CreateEventRequest
// ============================================================================

func TestRequireFields_CreateEvent_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateEventRequest{
		Name:      "Team dinner",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	}
	if err := RequireFields(req); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestRequireFields_CreateEvent_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   CreateEventRequest
		field string
	}{
		{"no name", CreateEventRequest{StartDate: "2024-01-01", EndDate: "2024-01-02"}, "name"},
		{"no start", CreateEventRequest{Name: "x", EndDate: "2024-01-02"}, "start_date"},
		{"no end", CreateEventRequest{Name: "x", StartDate: "2024-01-01"}, "end_date"},
		{"nothing", CreateEventRequest{}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := RequireFields(&tt.req)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestRequireFields_CreateEvent_TooLong(t *testing.T) {
	t.Parallel()

	req := &CreateEventRequest{
		Name:      strings.Repeat("n", MaxEventNameLength+1),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	}
	err := RequireFields(req)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("expected ErrFieldTooLong, got %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the field, got %q", err.Error())
	}

	req.Name = "ok"
	req.Description = strings.Repeat("d", MaxEventDescriptionLength+1)
	if err := RequireFields(req); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("expected ErrFieldTooLong for description, got %v", err)
	}
}

func TestRequireFields_CountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	req := &CreateEventRequest{
		Name:      strings.Repeat("é", MaxEventNameLength),
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
	}
	if err := RequireFields(req); err != nil {
		t.Errorf("expected 100 two-byte characters to pass, got %v", err)
	}
}

// ============================================================================
// RequireFields Tests - SubmitResponsesRequest
// ============================================================================

func TestRequireFields_Submit_EmptyResponsesIsMissing(t *testing.T) {
	t.Parallel()

	req := &SubmitResponsesRequest{ParticipantName: "Ann", Responses: []ResponseItem{}}
	err := RequireFields(req)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if !strings.Contains(err.Error(), "responses") {
		t.Errorf("error should name responses, got %q", err.Error())
	}
}

func TestRequireFields_Submit_MissingParticipant(t *testing.T) {
	t.Parallel()

	req := &SubmitResponsesRequest{
		Responses: []ResponseItem{{Date: "2024-01-01", Status: intPtr(1)}},
	}
	var fe *FieldError
	if err := RequireFields(req); !errors.As(err, &fe) || fe.Field != "participant_name" {
		t.Errorf("expected participant_name error, got %v", err)
	}
}

func TestRequireFields_Submit_ParticipantTooLong(t *testing.T) {
	t.Parallel()

	req := &SubmitResponsesRequest{
		ParticipantName: strings.Repeat("p", MaxParticipantNameLength+1),
		Responses:       []ResponseItem{{Date: "2024-01-01", Status: intPtr(1)}},
	}
	if err := RequireFields(req); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("expected ErrFieldTooLong, got %v", err)
	}
}

// ============================================================================
// StatusInRange / ResponseItem.Parse Tests
// ============================================================================

func TestStatusInRange(t *testing.T) {
	t.Parallel()

	for s := 0; s <= 3; s++ {
		if err := StatusInRange(s); err != nil {
			t.Errorf("status %d: unexpected error %v", s, err)
		}
	}
	for _, s := range []int{-1, 4, 99} {
		if err := StatusInRange(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("status %d: expected ErrInvalidStatus, got %v", s, err)
		}
	}
}

func TestResponseItem_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    ResponseItem
		wantErr error
	}{
		{"valid", ResponseItem{Date: "2024-01-01", Status: intPtr(0)}, nil},
		{"missing date", ResponseItem{Status: intPtr(1)}, ErrInvalidItem},
		{"null status", ResponseItem{Date: "2024-01-01"}, ErrInvalidItem},
		{"bad date", ResponseItem{Date: "2024-02-30", Status: intPtr(1)}, ErrBadDateFormat},
		{"bad status", ResponseItem{Date: "2024-01-01", Status: intPtr(7)}, ErrInvalidStatus},
		{"long comment", ResponseItem{Date: "2024-01-01", Status: intPtr(2), Comment: strings.Repeat("c", MaxCommentLength+1)}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := tt.item.Parse()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResponseItem_Parse_ReturnsValues(t *testing.T) {
	t.Parallel()

	d, s, err := ResponseItem{Date: "2024-06-15", Status: intPtr(3), Comment: "any time"}.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(d) != "2024-06-15" || s != StatusAllDay {
		t.Errorf("got %v %v", d, s)
	}
}
