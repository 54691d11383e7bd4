package model

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted wire format for calendar dates
const DateLayout = "2006-01-02"

// MaxRangeDays is the default upper bound on end - start
const MaxRangeDays = 35

// ParseDate parses a YYYY-MM-DD calendar date. Dates that do not exist
// (2023-02-29) and loose forms (2024-1-5) are rejected.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateFormat, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateFormat, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ExpandDateRange returns every calendar date from start to end inclusive,
// limited to MaxRangeDays.
func ExpandDateRange(start, end time.Time) ([]time.Time, error) {
	return ExpandDateRangeWithin(start, end, MaxRangeDays)
}

// ExpandDateRangeWithin is ExpandDateRange with an explicit span limit in days.
func ExpandDateRangeWithin(start, end time.Time, maxDays int) ([]time.Time, error) {
	start, end = calendarDay(start), calendarDay(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	days := int(end.Sub(start).Hours() / 24)
	if days > maxDays {
		return nil, fmt.Errorf("%w: cannot exceed %d days", ErrRangeTooLarge, maxDays)
	}

	dates := make([]time.Time, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// calendarDay drops the clock and zone, keeping the calendar date as UTC midnight
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
