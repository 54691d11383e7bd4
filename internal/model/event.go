package model

import "time"

// Field length limits
const (
	MaxEventNameLength        = 100
	MaxEventDescriptionLength = 200
	MaxParticipantNameLength  = 50
	MaxCommentLength          = 100
)

// ResponseStatus is a participant's availability on one candidate date
type ResponseStatus int

const (
	StatusUnavailable ResponseStatus = 0 // Cannot make it
	StatusEvening     ResponseStatus = 1 // Evening only
	StatusDaytime     ResponseStatus = 2 // Daytime only
	StatusAllDay      ResponseStatus = 3 // Free all day
)

// Valid reports whether s is one of the four known statuses
func (s ResponseStatus) Valid() bool {
	return s >= StatusUnavailable && s <= StatusAllDay
}

func (s ResponseStatus) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusEvening:
		return "evening"
	case StatusDaytime:
		return "daytime"
	case StatusAllDay:
		return "all_day"
	default:
		return "unknown"
	}
}

// CanMeet reports whether two participants with the given statuses share
// a part of the day. All-day pairs with anything but unavailable.
func CanMeet(a, b ResponseStatus) bool {
	if a == StatusUnavailable || b == StatusUnavailable {
		return false
	}
	if a == StatusAllDay || b == StatusAllDay {
		return true
	}
	return a == b
}

// Event is a scheduling poll. UniqueURL is the only handle exposed to clients.
type Event struct {
	ID          string          `json:"-"`
	UniqueURL   string          `json:"unique_url"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Dates       []CandidateDate `json:"-"`
}

// CandidateDate is one calendar day offered by an event
type CandidateDate struct {
	ID      string    `json:"-"`
	EventID string    `json:"-"`
	Date    time.Time `json:"date"` // UTC midnight
}

// Response is one participant's answer for one candidate date
type Response struct {
	ID              string         `json:"-"`
	DateID          string         `json:"-"`
	ParticipantName string         `json:"participant_name"`
	Status          ResponseStatus `json:"status"`
	Comment         string         `json:"comment"`
}

// View returns the public representation of the event
func (e *Event) View() *EventView {
	dates := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		dates[i] = FormatDate(d.Date)
	}
	return &EventView{
		ID:          e.UniqueURL,
		Name:        e.Name,
		Description: e.Description,
		UniqueURL:   e.UniqueURL,
		CreatedAt:   e.CreatedAt,
		Dates:       dates,
	}
}

// Request types

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=200"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

// ResponseItem is a single date entry in a submission. Status is a pointer
// so an explicit null can be told apart from 0.
type ResponseItem struct {
	Date    string `json:"date"`
	Status  *int   `json:"status"`
	Comment string `json:"comment"`
}

// SubmitResponsesRequest carries a participant's full response set
type SubmitResponsesRequest struct {
	ParticipantName string         `json:"participant_name" validate:"required,max=50"`
	Responses       []ResponseItem `json:"responses" validate:"required,min=1"`
}

// Response payloads

// CreateEventResponse is returned after an event is created
type CreateEventResponse struct {
	Message  string `json:"message"`
	EventURL string `json:"event_url"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// EventView is the GET representation of an event
type EventView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UniqueURL   string    `json:"unique_url"`
	CreatedAt   time.Time `json:"created_at"`
	Dates       []string  `json:"dates"`
}

// Results is the aggregated view of all responses for an event
type Results struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Participants []string     `json:"participants"`
	Results      []DateResult `json:"results"`
}

// DateResult holds the responses for one candidate date
type DateResult struct {
	Date              string                `json:"date"`
	Responses         []ParticipantResponse `json:"responses"`
	Counts            StatusCounts          `json:"counts"`
	EveryoneAvailable bool                  `json:"everyone_available"`
}

// ParticipantResponse is one row of a DateResult
type ParticipantResponse struct {
	ParticipantName string         `json:"participant_name"`
	Status          ResponseStatus `json:"status"`
	Comment         string         `json:"comment"`
}

// StatusCounts tallies responses per status
type StatusCounts struct {
	Unavailable int `json:"unavailable"`
	Evening     int `json:"evening"`
	Daytime     int `json:"daytime"`
	AllDay      int `json:"all_day"`
}

// Add counts one more response with status s
func (c *StatusCounts) Add(s ResponseStatus) {
	switch s {
	case StatusUnavailable:
		c.Unavailable++
	case StatusEvening:
		c.Evening++
	case StatusDaytime:
		c.Daytime++
	case StatusAllDay:
		c.AllDay++
	}
}
