package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/datepoll/internal/model"
)

// EventTx is the mutating half of the store, valid only inside InTx.
type EventTx interface {
	// CreateEvent persists the event and all of its Dates, filling in their IDs
	CreateEvent(ctx context.Context, event *model.Event) error
	// DeleteEvent removes the event with its dates and responses
	DeleteEvent(ctx context.Context, eventID string) error
	// DeleteParticipantResponses removes every response the participant gave on the event's dates
	DeleteParticipantResponses(ctx context.Context, eventID, participant string) error
	// InsertResponses stores the responses in order
	InsertResponses(ctx context.Context, eventID string, responses []*model.Response) error
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// InTx runs fn in one transaction. fn's error rolls everything back.
	InTx(ctx context.Context, fn func(tx EventTx) error) error
	// GetByURL returns the event with its dates ascending, or nil, nil if absent
	GetByURL(ctx context.Context, uniqueURL string) (*model.Event, error)
	// ListResponses returns the event's responses in insertion order
	ListResponses(ctx context.Context, eventID string) ([]*model.Response, error)
}

// EventService handles event, response and results business logic
type EventService struct {
	repo         EventRepository
	maxRangeDays int
	now          func() time.Time
	newURL       func() string
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	Repo         EventRepository
	MaxRangeDays int // 0 means model.MaxRangeDays
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	maxDays := cfg.MaxRangeDays
	if maxDays <= 0 {
		maxDays = model.MaxRangeDays
	}
	return &EventService{
		repo:         cfg.Repo,
		maxRangeDays: maxDays,
		now:          time.Now,
		newURL:       uuid.NewString,
	}
}

// Create validates the request, expands the date range and stores the event
// together with its candidate dates.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if err := model.RequireFields(req); err != nil {
		return nil, err
	}

	start, err := model.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	days, err := model.ExpandDateRangeWithin(start, end, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		UniqueURL:   s.newURL(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
		Dates:       make([]model.CandidateDate, len(days)),
	}
	for i, d := range days {
		event.Dates[i] = model.CandidateDate{Date: d}
	}

	err = s.repo.InTx(ctx, func(tx EventTx) error {
		return tx.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	slog.Info("event created",
		slog.String("event_url", event.UniqueURL),
		slog.Int("dates", len(event.Dates)))
	return event, nil
}

// Get retrieves an event with its candidate dates
func (s *EventService) Get(ctx context.Context, uniqueURL string) (*model.Event, error) {
	event, err := s.repo.GetByURL(ctx, uniqueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// Delete removes an event along with its dates and responses
func (s *EventService) Delete(ctx context.Context, uniqueURL string) error {
	event, err := s.Get(ctx, uniqueURL)
	if err != nil {
		return err
	}

	err = s.repo.InTx(ctx, func(tx EventTx) error {
		return tx.DeleteEvent(ctx, event.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	slog.Info("event deleted", slog.String("event_url", uniqueURL))
	return nil
}

// SubmitResponses stores a participant's first answers. A repeat submission
// overwrites the earlier one, same as ReplaceResponses.
func (s *EventService) SubmitResponses(ctx context.Context, uniqueURL string, req *model.SubmitResponsesRequest) (int, error) {
	return s.replaceResponses(ctx, uniqueURL, req, false)
}

// ReplaceResponses overwrites a participant's full response set. The event
// must have at least one candidate date.
func (s *EventService) ReplaceResponses(ctx context.Context, uniqueURL string, req *model.SubmitResponsesRequest) (int, error) {
	return s.replaceResponses(ctx, uniqueURL, req, true)
}

func (s *EventService) replaceResponses(ctx context.Context, uniqueURL string, req *model.SubmitResponsesRequest, requireDates bool) (int, error) {
	if err := model.RequireFields(req); err != nil {
		return 0, err
	}

	event, err := s.Get(ctx, uniqueURL)
	if err != nil {
		return 0, err
	}
	if requireDates && len(event.Dates) == 0 {
		return 0, ErrNoCandidateDates
	}

	responses, err := mapResponses(event, req)
	if err != nil {
		return 0, err
	}

	err = s.repo.InTx(ctx, func(tx EventTx) error {
		if err := tx.DeleteParticipantResponses(ctx, event.ID, req.ParticipantName); err != nil {
			return err
		}
		return tx.InsertResponses(ctx, event.ID, responses)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace responses: %w", err)
	}

	slog.Info("responses replaced",
		slog.String("event_url", uniqueURL),
		slog.Int("responses", len(responses)))
	return len(responses), nil
}

// mapResponses validates every item and resolves it to a candidate date.
// Nothing is returned unless all items pass.
func mapResponses(event *model.Event, req *model.SubmitResponsesRequest) ([]*model.Response, error) {
	dateIDs := make(map[string]string, len(event.Dates))
	for _, d := range event.Dates {
		dateIDs[model.FormatDate(d.Date)] = d.ID
	}

	seen := make(map[string]bool, len(req.Responses))
	responses := make([]*model.Response, 0, len(req.Responses))
	for i, item := range req.Responses {
		date, status, err := item.Parse()
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", i, err)
		}

		key := model.FormatDate(date)
		if seen[key] {
			return nil, fmt.Errorf("response %d: %w: %s", i, ErrDuplicateDate, key)
		}
		seen[key] = true

		dateID, ok := dateIDs[key]
		if !ok {
			return nil, fmt.Errorf("response %d: %w: %s", i, ErrUnknownDate, key)
		}

		responses = append(responses, &model.Response{
			DateID:          dateID,
			ParticipantName: req.ParticipantName,
			Status:          status,
			Comment:         item.Comment,
		})
	}
	return responses, nil
}
