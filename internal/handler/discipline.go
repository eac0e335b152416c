package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

// DisciplineHandler handles HTTP requests for sport disciplines.
type DisciplineHandler struct {
	service *service.DisciplineService
}

// NewDisciplineHandler creates a new DisciplineHandler.
func NewDisciplineHandler(svc *service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{service: svc}
}

// HandleList handles GET /app/sports requests.
func (h *DisciplineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, list)
}

// HandleGet handles GET /app/sports/{id} requests.
func (h *DisciplineHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, d)
}

// HandleCreate handles POST /app/sports requests.
func (h *DisciplineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.DisciplineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, d)
}

// HandleUpdate handles PUT /app/sports/{id} requests.
func (h *DisciplineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.DisciplineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	d, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, d)
}

// HandleDelete handles DELETE /app/sports/{id} requests.
func (h *DisciplineHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, http.StatusOK, "sport discipline deleted")
}
