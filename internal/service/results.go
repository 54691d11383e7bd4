package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/forgo/datepoll/internal/model"
)

// GetResults returns every candidate date with its responses
func (s *EventService) GetResults(ctx context.Context, uniqueURL string) (*model.Results, error) {
	event, err := s.Get(ctx, uniqueURL)
	if err != nil {
		return nil, err
	}

	responses, err := s.repo.ListResponses(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	return AggregateResults(event, responses), nil
}

// AggregateResults groups responses under their candidate date. Dates are
// ascending; responses within a date are ordered by participant name, ties
// keeping the order they were given in.
func AggregateResults(event *model.Event, responses []*model.Response) *model.Results {
	dates := make([]model.CandidateDate, len(event.Dates))
	copy(dates, event.Dates)
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})

	byDate := make(map[string][]*model.Response, len(dates))
	for _, r := range responses {
		byDate[r.DateID] = append(byDate[r.DateID], r)
	}

	names := make(map[string]struct{})
	results := make([]model.DateResult, 0, len(dates))
	for _, d := range dates {
		rs := byDate[d.ID]
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].ParticipantName < rs[j].ParticipantName
		})

		dr := model.DateResult{
			Date:      model.FormatDate(d.Date),
			Responses: make([]model.ParticipantResponse, 0, len(rs)),
		}
		for _, r := range rs {
			dr.Responses = append(dr.Responses, model.ParticipantResponse{
				ParticipantName: r.ParticipantName,
				Status:          r.Status,
				Comment:         r.Comment,
			})
			dr.Counts.Add(r.Status)
			names[r.ParticipantName] = struct{}{}
		}
		dr.EveryoneAvailable = everyoneCanMeet(rs)
		results = append(results, dr)
	}

	participants := make([]string, 0, len(names))
	for name := range names {
		participants = append(participants, name)
	}
	sort.Strings(participants)

	return &model.Results{
		Name:         event.Name,
		Description:  event.Description,
		Participants: participants,
		Results:      results,
	}
}

// everyoneCanMeet is true when at least two people answered and every pair
// of them shares a part of the day.
func everyoneCanMeet(rs []*model.Response) bool {
	if len(rs) < 2 {
		return false
	}
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			if !model.CanMeet(rs[i].Status, rs[j].Status) {
				return false
			}
		}
	}
	return true
}
