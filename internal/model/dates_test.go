package model

import (
	"errors"
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

// ============================================================================
// ParseDate Tests
// ============================================================================

func TestParseDate_Valid(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.February || d.Day() != 29 {
		t.Errorf("unexpected date %v", d)
	}
	if d.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", d.Location())
	}
}

func TestParseDate_Rejects(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"2023-02-29", // not a leap year
		"2024-13-01",
		"2024-1-5",
		"01/02/2024",
		"2024-01-01T00:00:00Z",
		"tomorrow",
	}
	for _, in := range inputs {
		if _, err := ParseDate(in); !errors.Is(err, ErrBadDateFormat) {
			t.Errorf("ParseDate(%q): expected ErrBadDateFormat, got %v", in, err)
		}
	}
}

func TestFormatDate_RoundTrip(t *testing.T) {
	t.Parallel()

	if got := FormatDate(day(t, "2024-07-04")); got != "2024-07-04" {
		t.Errorf("expected 2024-07-04, got %s", got)
	}
}

// ============================================================================
// ExpandDateRange Tests
// ============================================================================

func TestExpandDateRange_SingleDay(t *testing.T) {
	t.Parallel()

	d := day(t, "2024-03-10")
	dates, err := ExpandDateRange(d, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(d) {
		t.Errorf("expected [%v], got %v", d, dates)
	}
}

func TestExpandDateRange_InclusiveAscendingNoGaps(t *testing.T) {
	t.Parallel()

	start, end := day(t, "2024-02-27"), day(t, "2024-03-02")
	dates, err := ExpandDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i, w := range want {
		if got := FormatDate(dates[i]); got != w {
			t.Errorf("dates[%d] = %s, want %s", i, got, w)
		}
	}
}

func TestExpandDateRange_LengthMatchesSpan(t *testing.T) {
	t.Parallel()

	start := day(t, "2024-12-20")
	for span := 0; span <= MaxRangeDays; span++ {
		dates, err := ExpandDateRange(start, start.AddDate(0, 0, span))
		if err != nil {
			t.Fatalf("span %d: unexpected error: %v", span, err)
		}
		if len(dates) != span+1 {
			t.Errorf("span %d: expected %d dates, got %d", span, span+1, len(dates))
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
				t.Errorf("span %d: gap between %v and %v", span, dates[i-1], dates[i])
			}
		}
	}
}

func TestExpandDateRange_MaxSpanAccepted(t *testing.T) {
	t.Parallel()

	dates, err := ExpandDateRange(day(t, "2024-01-01"), day(t, "2024-02-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 36 {
		t.Errorf("expected 36 dates, got %d", len(dates))
	}
}

func TestExpandDateRange_TooLarge(t *testing.T) {
	t.Parallel()

	_, err := ExpandDateRange(day(t, "2024-01-01"), day(t, "2024-02-06"))
	if !errors.Is(err, ErrRangeTooLarge) {
		t.Errorf("expected ErrRangeTooLarge, got %v", err)
	}
}

func TestExpandDateRange_StartAfterEnd(t *testing.T) {
	t.Parallel()

	_, err := ExpandDateRange(day(t, "2024-01-02"), day(t, "2024-01-01"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestExpandDateRangeWithin_CustomLimit(t *testing.T) {
	t.Parallel()

	start := day(t, "2024-01-01")
	if _, err := ExpandDateRangeWithin(start, start.AddDate(0, 0, 7), 7); err != nil {
		t.Errorf("expected 7-day span to pass, got %v", err)
	}
	if _, err := ExpandDateRangeWithin(start, start.AddDate(0, 0, 8), 7); !errors.Is(err, ErrRangeTooLarge) {
		t.Errorf("expected ErrRangeTooLarge, got %v", err)
	}
}

func TestExpandDateRange_IgnoresClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 0, 15, 0, 0, time.UTC)
	dates, err := ExpandDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
	if dates[0].Hour() != 0 || dates[0].Minute() != 0 {
		t.Errorf("expected midnight, got %v", dates[0])
	}
}
