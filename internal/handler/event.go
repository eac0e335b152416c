package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsboard/sportsboard-go/internal/middleware"
	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// HandleList handles GET /app/sports/{id}/events requests.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListByDiscipline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, events)
}

// HandleGet handles GET /app/sports/{id}/events/{eventId} requests.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eventId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, e)
}

// HandleCreate handles POST /app/sports/{id}/events requests.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.NotAuthenticated(w)
		return
	}

	var req model.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := h.service.Create(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, e)
}

// HandleUpdate handles PUT /app/sports/{id}/events/{eventId} requests.
// The body is read only after the existence and ownership checks pass.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	grant, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := h.service.UpdateEvent(r.Context(), grant, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, e)
}

// HandleDelete handles DELETE /app/sports/{id}/events/{eventId} requests.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	grant, ok := h.authorize(w, r)
	if !ok {
		return
	}

	e, err := h.service.DeleteEvent(r.Context(), grant)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, e)
}

// authorize writes the rejection itself when the caller may not modify the event.
func (h *EventHandler) authorize(w http.ResponseWriter, r *http.Request) (service.EventGrant, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.NotAuthenticated(w)
		return service.EventGrant{}, false
	}

	grant, err := h.service.AuthorizeModification(r.Context(), user, chi.URLParam(r, "id"), chi.URLParam(r, "eventId"))
	if err != nil {
		writeServiceError(w, r, err)
		return service.EventGrant{}, false
	}
	return grant, true
}
