// Package helpers provides HTTP test utilities: a request builder that
// serves through any http.Handler, and assertions for the {"error": ...}
// body every failed call returns.
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/api/events").
//	    WithBody(map[string]string{"name": "Dinner"}).
//	    Serve(router)
//	helpers.AssertError(t, rr, http.StatusBadRequest, "start_date")
package helpers
