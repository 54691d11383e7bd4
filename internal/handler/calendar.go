package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/forgo/datepoll/internal/model"
)

const calendarProductID = "-//datepoll//Date Poll//EN"

// Calendar handles GET /api/events/{uniqueURL}/calendar.ics.
// Every candidate date becomes an all-day VEVENT summarising availability.
func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	uniqueURL := r.PathValue("uniqueURL")

	results, err := h.svc.GetResults(r.Context(), uniqueURL)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	cal, err := BuildCalendar(uniqueURL, results, h.now())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		h.handleError(w, r, fmt.Errorf("encode calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, uniqueURL))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// BuildCalendar converts aggregated results into an iCalendar document
func BuildCalendar(uniqueURL string, results *model.Results, stamp time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	for _, dr := range results.Results {
		day, err := model.ParseDate(dr.Date)
		if err != nil {
			return nil, err
		}

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@datepoll", uniqueURL, dr.Date))
		ev.Props.SetText(ical.PropSummary, calendarSummary(results.Name, dr))
		ev.Props.SetText(ical.PropDescription, calendarDescription(results.Description, dr))
		ev.Props.SetDate(ical.PropDateTimeStart, day)
		ev.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

		cal.Children = append(cal.Children, ev.Component)
	}

	return cal, nil
}

func calendarSummary(name string, dr model.DateResult) string {
	available := len(dr.Responses) - dr.Counts.Unavailable
	summary := fmt.Sprintf("%s (%d/%d available)", name, available, len(dr.Responses))
	if dr.EveryoneAvailable {
		summary += " - everyone can meet"
	}
	return summary
}

func calendarDescription(description string, dr model.DateResult) string {
	var sb strings.Builder
	if description != "" {
		sb.WriteString(description)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "all day: %d, daytime: %d, evening: %d, unavailable: %d",
		dr.Counts.AllDay, dr.Counts.Daytime, dr.Counts.Evening, dr.Counts.Unavailable)
	for _, resp := range dr.Responses {
		fmt.Fprintf(&sb, "\n%s: %s", resp.ParticipantName, resp.Status)
		if resp.Comment != "" {
			fmt.Fprintf(&sb, " (%s)", resp.Comment)
		}
	}
	return sb.String()
}
