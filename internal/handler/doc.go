// Package handler provides the HTTP handlers for the datepoll API.
//
// EventHandler serves events, participant responses, aggregated results and
// an iCalendar export; HealthHandler serves the liveness probe. Routes are
// registered on a standard http.ServeMux using method patterns:
//
//	POST   /api/events
//	GET    /api/events/{uniqueURL}
//	DELETE /api/events/{uniqueURL}
//	POST   /api/events/{uniqueURL}/responses
//	PUT    /api/events/{uniqueURL}/responses
//	GET    /api/events/{uniqueURL}/results
//	GET    /api/events/{uniqueURL}/calendar.ics
//	GET    /health
//
// # Errors
//
// Every failure is written as {"error": "<message>"}. MapServiceError maps
// model and service sentinel errors to 400 or 404; anything else becomes a
// generic 500 and the cause is logged with the request id.
package handler
