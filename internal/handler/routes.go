package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sportsboard/sportsboard-go/internal/middleware"
	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
	"github.com/sportsboard/sportsboard-go/internal/response"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

// Deps carries everything the router needs.
type Deps struct {
	Store        repository.Store
	Auth         *service.AuthService
	Disciplines  *service.DisciplineService
	Events       *service.EventService
	AuthLimiter  *middleware.RateLimiter
	FrontendURL  string
	CookieSecure bool
}

// NewRouter wires the HTTP API.
func NewRouter(d Deps) http.Handler {
	authH := NewAuthHandler(d.Auth, d.CookieSecure)
	discH := NewDisciplineHandler(d.Disciplines)
	eventH := NewEventHandler(d.Events)

	authenticate := middleware.Authenticate(d.Auth)
	anyRole := middleware.Authorize(model.RoleUser, model.RoleAdmin)
	adminOnly := middleware.Authorize(model.RoleAdmin)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", HandleHealth(d.Store))

	r.Route("/app", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.AuthLimiter != nil {
					r.Use(d.AuthLimiter.Handler)
				}
				r.Post("/register", authH.HandleRegister)
				r.Post("/login", authH.HandleLogin)
			})
			r.Post("/logout", authH.HandleLogout)
			r.With(authenticate).Get("/me", authH.HandleMe)
		})

		r.Route("/sports", func(r chi.Router) {
			r.Get("/", discH.HandleList)
			r.With(authenticate, adminOnly).Post("/", discH.HandleCreate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", discH.HandleGet)
				r.With(authenticate, adminOnly).Put("/", discH.HandleUpdate)
				r.With(authenticate, adminOnly).Delete("/", discH.HandleDelete)

				r.Route("/events", func(r chi.Router) {
					r.Get("/", eventH.HandleList)
					r.Get("/{eventId}", eventH.HandleGet)

					r.Group(func(r chi.Router) {
						r.Use(authenticate, anyRole)
						r.Post("/", eventH.HandleCreate)
						r.Put("/{eventId}", eventH.HandleUpdate)
						r.Delete("/{eventId}", eventH.HandleDelete)
					})
				})
			})
		})
	})

	return r
}
