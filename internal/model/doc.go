// Package model defines the domain entities, request/response payloads and
// validation rules for the date-poll API.
//
// # Domain Entities
//
//   - Event: a scheduling poll, addressed only by its UniqueURL
//   - CandidateDate: one calendar day offered by an event
//   - Response: one participant's status (and optional comment) for one date
//
// Internal IDs carry `json:"-"` and never leave the server.
//
// # Dates
//
// Calendar dates travel as YYYY-MM-DD strings and are held as UTC midnight
// time.Time values. ExpandDateRange turns a start/end pair into the inclusive,
// ascending list of days, bounded by MaxRangeDays.
//
// # Validation
//
// Request structs carry go-playground/validator tags. RequireFields reports
// the first failing field by its JSON name:
//
//	type CreateEventRequest struct {
//	    Name      string `json:"name" validate:"required,max=100"`
//	    StartDate string `json:"start_date" validate:"required"`
//	}
//
// Item-level checks (date format, status domain, comment length) live on
// ResponseItem.Parse.
//
// # Error Types
//
// Validation sentinels (ErrMissingField, ErrBadDateFormat, ...) are wrapped
// with context and matched with errors.Is. ErrorResponse is the wire form of
// any failure:
//
//	{"error": "start date cannot be after end date"}
package model
