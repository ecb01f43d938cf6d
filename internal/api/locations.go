package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/store"
)

// AddLocationRequest is the POST /api/v1/locations body.
type AddLocationRequest struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Coefficient float64 `json:"coefficient"`
}

// ListLocationsHandler handles GET /api/v1/locations.
func ListLocationsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out []LocationDTO
		deps.read(func() {
			for _, l := range deps.Net.LocationsByName() {
				out = append(out, toLocationDTO(l))
			}
		})
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// AddLocationHandler handles POST /api/v1/locations.
func AddLocationHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddLocationRequest
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "location name is required")
			return
		}
		var (
			dto    LocationDTO
			apiErr error
		)
		deps.write(func() {
			loc, err := network.NewLocation(req.Name, req.Latitude, req.Longitude, req.Coefficient)
			if err == nil {
				err = deps.Net.AddLocation(loc)
			}
			if err != nil {
				apiErr = err
				return
			}
			dto = toLocationDTO(loc)
		})
		if apiErr != nil {
			var dup *network.DuplicateError
			if errors.As(apiErr, &dup) {
				respondWithError(w, http.StatusConflict, apiErr.Error())
			} else {
				respondWithError(w, http.StatusBadRequest, apiErr.Error())
			}
			return
		}
		logging.Info("location added", "name", req.Name)
		respondWithSuccess(w, http.StatusCreated, &dto)
	}
}

// GetLocationHandler handles GET /api/v1/locations/{name}.
func GetLocationHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		var (
			dto   LocationDTO
			found bool
		)
		deps.read(func() {
			if loc := deps.Net.FindLocation(name); loc != nil {
				dto = toLocationDTO(loc)
				found = true
			}
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "location not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// LocationEventsHandler handles the schedule, departures and arrivals
// listings for one location, selected by the kind argument.
func LocationEventsHandler(deps *Deps, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		var (
			events []network.Event
			found  bool
		)
		deps.read(func() {
			loc := deps.Net.FindLocation(name)
			if loc == nil {
				return
			}
			found = true
			switch kind {
			case "departures":
				events = loc.DepartureEvents()
			case "arrivals":
				events = loc.ArrivalEvents()
			default:
				events = loc.ScheduleEvents()
			}
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "location not found")
			return
		}
		dtos := toEventDTOs(events)
		respondWithSuccess(w, http.StatusOK, &dtos)
	}
}

// ImportLocationsHandler handles POST /api/v1/locations/import with a
// CSV body, one record per line.
func ImportLocationsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			sum store.Summary
			err error
		)
		deps.write(func() {
			sum, err = store.ImportLocations(deps.Net, r.Body)
		})
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "error reading import body")
			return
		}
		logging.Info("locations imported", "imported", sum.Imported, "invalid", sum.Invalid)
		dto := ImportDTO{Imported: sum.Imported, Invalid: sum.Invalid}
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// ExportLocationsHandler handles GET /api/v1/locations/export, writing
// the CSV records sorted by name.
func ExportLocationsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		deps.read(func() {
			_, _ = store.ExportLocations(deps.Net, w)
		})
	}
}
