package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/datepoll/internal/middleware"
	"github.com/forgo/datepoll/internal/model"
)

// EventService is the subset of service.EventService the handlers call
type EventService interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	Get(ctx context.Context, uniqueURL string) (*model.Event, error)
	Delete(ctx context.Context, uniqueURL string) error
	SubmitResponses(ctx context.Context, uniqueURL string, req *model.SubmitResponsesRequest) (int, error)
	ReplaceResponses(ctx context.Context, uniqueURL string, req *model.SubmitResponsesRequest) (int, error)
	GetResults(ctx context.Context, uniqueURL string) (*model.Results, error)
}

// EventHandler handles event, response and results endpoints
type EventHandler struct {
	svc EventService
	now func() time.Time
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{svc: svc, now: time.Now}
}

// RegisterRoutes registers event routes
func (h *EventHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/events", h.Create)
	mux.HandleFunc("GET /api/events/{uniqueURL}", h.Get)
	mux.HandleFunc("DELETE /api/events/{uniqueURL}", h.Delete)

	// Responses
	mux.HandleFunc("POST /api/events/{uniqueURL}/responses", h.SubmitResponses)
	mux.HandleFunc("PUT /api/events/{uniqueURL}/responses", h.ReplaceResponses)

	// Results
	mux.HandleFunc("GET /api/events/{uniqueURL}/results", h.Results)
	mux.HandleFunc("GET /api/events/{uniqueURL}/calendar.ics", h.Calendar)
}

// Create handles POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, model.CreateEventResponse{
		Message:  "Event created with date range!",
		EventURL: event.UniqueURL,
	})
}

// Get handles GET /api/events/{uniqueURL}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), r.PathValue("uniqueURL"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, event.View())
}

// Delete handles DELETE /api/events/{uniqueURL}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("uniqueURL")); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteNoContent(w)
}

// SubmitResponses handles POST /api/events/{uniqueURL}/responses
func (h *EventHandler) SubmitResponses(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponsesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if _, err := h.svc.SubmitResponses(r.Context(), r.PathValue("uniqueURL"), &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusCreated, "Responses added successfully!")
}

// ReplaceResponses handles PUT /api/events/{uniqueURL}/responses
func (h *EventHandler) ReplaceResponses(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponsesRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if _, err := h.svc.ReplaceResponses(r.Context(), r.PathValue("uniqueURL"), &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteMessage(w, http.StatusOK, "Responses updated successfully!")
}

// Results handles GET /api/events/{uniqueURL}/results
func (h *EventHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.GetResults(r.Context(), r.PathValue("uniqueURL"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, results)
}

// handleError converts service errors to HTTP responses, logging anything
// that ends up as a 500.
func (h *EventHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	resp := MapServiceError(err)
	if resp.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, resp)
}
