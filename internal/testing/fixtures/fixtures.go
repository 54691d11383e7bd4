package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/service"
)

// Factory creates test entities through a repository
type Factory struct {
	repo service.EventRepository
}

// New creates a new fixture factory
func New(repo service.EventRepository) *Factory {
	return &Factory{repo: repo}
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Name        string
	Description string
	Dates       []string // YYYY-MM-DD; may be empty
}

// WithDates sets the candidate dates of the event
func WithDates(dates ...string) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Dates = dates
	}
}

// WithoutDates creates an event with no candidate dates
func WithoutDates() func(*EventOpts) {
	return func(o *EventOpts) {
		o.Dates = nil
	}
}

// WithDescription sets the event description
func WithDescription(desc string) func(*EventOpts) {
	return func(o *EventOpts) {
		o.Description = desc
	}
}

// CreateEvent stores an event. By default it spans 2024-01-01..2024-01-03.
func (f *Factory) CreateEvent(t *testing.T, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	o := &EventOpts{
		Name:  "Fixture event",
		Dates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
	}
	for _, opt := range opts {
		opt(o)
	}

	event := &model.Event{
		UniqueURL:   uuid.NewString(),
		Name:        o.Name,
		Description: o.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, s := range o.Dates {
		d, err := model.ParseDate(s)
		if err != nil {
			t.Fatalf("fixtures: bad date %q: %v", s, err)
		}
		event.Dates = append(event.Dates, model.CandidateDate{Date: d})
	}

	ctx := context.Background()
	err := f.repo.InTx(ctx, func(tx service.EventTx) error {
		return tx.CreateEvent(ctx, event)
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}

// ============================================================================
// Response Fixtures
// ============================================================================

// AddResponses stores one response per date for the participant without
// removing earlier ones. statuses maps YYYY-MM-DD to status.
func (f *Factory) AddResponses(t *testing.T, event *model.Event, participant string, statuses map[string]model.ResponseStatus) []*model.Response {
	t.Helper()

	var responses []*model.Response
	for _, d := range event.Dates {
		status, ok := statuses[model.FormatDate(d.Date)]
		if !ok {
			continue
		}
		responses = append(responses, &model.Response{
			DateID:          d.ID,
			ParticipantName: participant,
			Status:          status,
		})
	}

	ctx := context.Background()
	err := f.repo.InTx(ctx, func(tx service.EventTx) error {
		return tx.InsertResponses(ctx, event.ID, responses)
	})
	if err != nil {
		t.Fatalf("fixtures: failed to add responses: %v", err)
	}
	return responses
}
