package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/reneeli0223/Flight-Scheduler/internal/api"
	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/middleware"
)

// RegisterRoutes wires the chi router: global middleware plus the
// location, flight and travel endpoints.
func RegisterRoutes(deps *api.Deps, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.RateLimit)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(deps, upSince))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/locations", func(r chi.Router) {
			r.Get("/", api.ListLocationsHandler(deps))
			r.Post("/", api.AddLocationHandler(deps))
			r.Post("/import", api.ImportLocationsHandler(deps))
			r.Get("/export", api.ExportLocationsHandler(deps))
			r.Get("/{name}", api.GetLocationHandler(deps))
			r.Get("/{name}/schedule", api.LocationEventsHandler(deps, "schedule"))
			r.Get("/{name}/departures", api.LocationEventsHandler(deps, "departures"))
			r.Get("/{name}/arrivals", api.LocationEventsHandler(deps, "arrivals"))
		})
		r.Route("/flights", func(r chi.Router) {
			r.Get("/", api.ListFlightsHandler(deps))
			r.Post("/", api.AddFlightHandler(deps))
			r.Post("/import", api.ImportFlightsHandler(deps))
			r.Get("/export", api.ExportFlightsHandler(deps))
			r.Get("/{id}", api.GetFlightHandler(deps))
			r.Delete("/{id}", api.RemoveFlightHandler(deps))
			r.Post("/{id}/book", api.BookFlightHandler(deps))
			r.Post("/{id}/reset", api.ResetFlightHandler(deps))
		})
		r.Get("/travel", api.TravelHandler(deps))
	})

	return r
}
