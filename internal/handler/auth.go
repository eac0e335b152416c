package handler

import (
	"net/http"
	"time"

	"github.com/sportsboard/sportsboard-go/internal/middleware"
	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service      *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieSecure marks the session
// cookie as HTTPS-only.
func NewAuthHandler(svc *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: svc, cookieSecure: cookieSecure}
}

// HandleRegister handles POST /app/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.setSession(w, res.Token)
	response.JSON(w, http.StatusCreated, res.User)
}

// HandleLogin handles POST /app/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.setSession(w, res.Token)
	response.JSON(w, http.StatusOK, res.User)
}

// HandleLogout handles POST /app/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1, time.Unix(0, 0)))
	response.Message(w, http.StatusOK, "logged out")
}

// HandleMe handles GET /app/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.NotAuthenticated(w)
		return
	}
	response.JSON(w, http.StatusOK, user.Response())
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	expiry := h.service.TokenExpiry()
	http.SetCookie(w, h.cookie(token, int(expiry.Seconds()), time.Now().Add(expiry)))
}

func (h *AuthHandler) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
