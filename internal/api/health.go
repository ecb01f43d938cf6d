package api

import (
	"net/http"
	"time"
)

// HealthDTO is the GET /healthCheck payload.
type HealthDTO struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Locations int    `json:"locations"`
	Flights   int    `json:"flights"`
}

// HealthCheckHandler handles GET /healthCheck. The network lives
// entirely in memory, so health is uptime plus collection sizes.
func HealthCheckHandler(deps *Deps, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto := HealthDTO{Status: "ok"}
		deps.read(func() {
			dto.Locations = len(deps.Net.Locations())
			dto.Flights = len(deps.Net.Flights())
		})
		dto.Uptime = time.Since(upSince).Round(time.Second).String()
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}
