package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

// CookieName is the cookie carrying the session token.
const CookieName = "Authorization"

type contextKey struct{}

var userKey contextKey

// TokenVerifier resolves a session token to the user it was issued to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (model.User, error)
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

// Authenticate reads the session cookie, verifies it and attaches the user to
// the request context. Every failure gets the same 401 body.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				response.NotAuthenticated(w)
				return
			}

			user, err := verifier.VerifyToken(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrNotAuthenticated) {
					slog.Error("token verification failed", "path", r.URL.Path, "error", err)
				}
				response.NotAuthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Authorize lets the request through only when the authenticated user holds
// one of the allowed roles. It must run after Authenticate.
func Authorize(allowed ...model.Role) func(http.Handler) http.Handler {
	roles := model.NewRoleSet(allowed...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.NotAuthenticated(w)
				return
			}
			if !roles.Contains(user.Role) {
				response.Forbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
