/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for case-handling frontends

ROUTE GROUPS:
  /api/computations/*   Compute and fetch stored computations
  /api/cases/*          Per-case computation history
  /api/minimum-rights   Floor entitlements
  /api/days/*           Single-figure day counters
  /api/healthz          Liveness and rule-set version

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/computations", func(r chi.Router) {
			r.Post("/", h.Compute)
			r.Post("/legacy", h.ComputeLegacy)
			r.Get("/{id}", h.GetComputation)
		})

		r.Route("/cases/{caseID}/computations", func(r chi.Router) {
			r.Get("/", h.ListComputations)
			r.Get("/latest", h.LatestComputation)
		})

		r.Post("/minimum-rights", h.MinimumRights)

		r.Route("/days", func(r chi.Router) {
			r.Get("/premature", h.PrematureDays)
			r.Get("/multiple-birth", h.MultipleBirthDays)
			r.Get("/father-around-birth", h.FatherAroundBirthDays)
			r.Get("/close-cases", h.CloseCasesDays)
			r.Get("/father-only-floor", h.FatherOnlyFloorDays)
		})

		r.Get("/healthz", h.Healthz)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"service": "quota-engine",
			"docs":    "/api/healthz",
		})
	})

	return r
}
