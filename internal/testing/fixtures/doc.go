// Package fixtures provides test data factories.
//
// Factories write straight through a service.EventRepository, so they can
// build states the API would refuse (an event without candidate dates, a
// participant with several rows on one date):
//
//	f := fixtures.New(repository.NewEventRepository(testdb.NewSQLite(t)))
//	event := f.CreateEvent(t, fixtures.WithDates("2024-05-01", "2024-05-02"))
//	f.AddResponses(t, event, "Ann", map[string]model.ResponseStatus{"2024-05-01": model.StatusAllDay})
package fixtures
