package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/testing/fixtures"
	"github.com/forgo/datepoll/internal/testing/helpers"
)

func TestBuildCalendar_OneAllDayEventPerDate(t *testing.T) {
	t.Parallel()

	results := &model.Results{
		Name:        "Hike",
		Description: "Bring water",
		Results: []model.DateResult{
			{
				Date: "2024-05-01",
				Responses: []model.ParticipantResponse{
					{ParticipantName: "Ann", Status: model.StatusAllDay},
					{ParticipantName: "Ben", Status: model.StatusDaytime, Comment: "after 10"},
				},
				Counts:            model.StatusCounts{AllDay: 1, Daytime: 1},
				EveryoneAvailable: true,
			},
			{Date: "2024-05-02", Responses: []model.ParticipantResponse{}},
		},
	}

	cal, err := BuildCalendar("abc", results, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	uid, err := first.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "abc-2024-05-01@datepoll", uid)

	summary, err := first.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Hike (2/2 available) - everyone can meet", summary)

	desc, err := first.Props.Text(ical.PropDescription)
	require.NoError(t, err)
	assert.Contains(t, desc, "Bring water")
	assert.Contains(t, desc, "Ben: daytime (after 10)")

	start := first.Props.Get(ical.PropDateTimeStart)
	require.NotNil(t, start)
	assert.Equal(t, string(ical.ValueDate), start.Params.Get(ical.ParamValue))
	assert.Equal(t, "20240501", start.Value)

	end := first.Props.Get(ical.PropDateTimeEnd)
	require.NotNil(t, end)
	assert.Equal(t, "20240502", end.Value)
}

func TestBuildCalendar_BadDate(t *testing.T) {
	t.Parallel()

	_, err := BuildCalendar("abc", &model.Results{Results: []model.DateResult{{Date: "nope"}}}, time.Now())
	assert.ErrorIs(t, err, model.ErrBadDateFormat)
}

func TestCalendar_Endpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	event := s.fixtures.CreateEvent(t, fixtures.WithDates("2024-06-10", "2024-06-11"))
	s.fixtures.AddResponses(t, event, "Dana", map[string]model.ResponseStatus{"2024-06-10": model.StatusEvening})

	rr := helpers.NewRequest(t, http.MethodGet, "/api/events/"+event.UniqueURL+"/calendar.ics").Serve(s.mux)

	helpers.AssertStatus(t, rr, http.StatusOK)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/calendar"))

	cal, err := ical.NewDecoder(rr.Body).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestCalendar_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/api/events/missing/calendar.ics").Serve(s.mux)
	helpers.AssertError(t, rr, http.StatusNotFound, "event not found")
}
