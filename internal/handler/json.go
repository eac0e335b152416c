package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeJSON reads the request body into v. On failure it writes the error
// response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors onto HTTP responses. Unknown errors
// are logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		response.WriteValidation(w, verr.Error(), verr.Fields)
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		response.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrDisciplineNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrEventVanished):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDisciplineExists):
		response.WriteError(w, http.StatusConflict, err.Error())
	default:
		response.Internal(w, r, err)
	}
}
