// Package response writes the JSON bodies shared by handlers and middleware.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Messages used by more than one layer.
const (
	MsgNotAuthenticated = "not authenticated"
	MsgForbidden        = "forbidden"
	MsgNotFound         = "resource not found"
	MsgTooManyRequests  = "too many requests"
	MsgInternal         = "internal server error"
)

// Body is the {status, message} payload of every error response and of
// successful responses that return no resource.
type Body struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// Message writes a {status, message} body for a successful outcome.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Body{Status: status, Message: msg})
}

// WriteError writes {status, message}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Body{Status: status, Message: msg})
}

// WriteValidation writes a 400 carrying the per-field messages.
func WriteValidation(w http.ResponseWriter, msg string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, Body{Status: http.StatusBadRequest, Message: msg, Fields: fields})
}

func NotAuthenticated(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, MsgNotAuthenticated)
}

func Forbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = MsgForbidden
	}
	WriteError(w, http.StatusForbidden, msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = MsgNotFound
	}
	WriteError(w, http.StatusNotFound, msg)
}

func TooManyRequests(w http.ResponseWriter) {
	WriteError(w, http.StatusTooManyRequests, MsgTooManyRequests)
}

// Internal hides err from the client and logs it instead.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, MsgInternal)
}
