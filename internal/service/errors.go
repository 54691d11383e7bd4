package service

import "errors"

// Centralized service layer errors.
// Validation errors live in the model package; these cover lookups and
// response replacement.

// ===== Event Errors =====
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrNoCandidateDates = errors.New("no dates found for this event to update responses for")
)

// ===== Response Errors =====
var (
	ErrUnknownDate   = errors.New("date not found for this event")
	ErrDuplicateDate = errors.New("date appears more than once in responses")
)
