package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/faces-agency/talent-sync/internal/pkg/httputil"
)

// RouterOptions carries the cross-cutting pieces the router needs.
type RouterOptions struct {
	AdminToken     string
	AllowedOrigins []string
	// RateLimit guards the public submission endpoint; nil disables it.
	RateLimit func(http.Handler) http.Handler
}

// SetupRoutes configures the full route tree.
func SetupRoutes(h *Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.RateLimit != nil {
				r.Use(opts.RateLimit)
			}
			r.Post("/applications", h.SubmitApplication)
		})

		// The relay keeps the CRM token server-side; the form client
		// posts here instead of talking to the CRM directly.
		r.Post("/hubspot-submit", h.Relay)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdminToken(opts.AdminToken))
			r.Get("/applications", h.ListApplications)
			r.Get("/applications/export", h.ExportApplications)
		})
	})

	return r
}

// requireAdminToken gates the admin endpoints behind a bearer token.
// An unconfigured token closes the endpoints entirely.
func requireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				httputil.Error(w, http.StatusForbidden, "admin API not configured")
				return
			}

			got := r.Header.Get("Authorization")
			want := "Bearer " + token
			if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				httputil.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
