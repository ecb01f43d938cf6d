package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/store"
)

// AddFlightRequest is the POST /api/v1/flights body. Departure is
// split into a weekday name and a 24h "HH:MM" time.
type AddFlightRequest struct {
	Weekday     string `json:"weekday"`
	Time        string `json:"time"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Capacity    int    `json:"capacity"`
}

// ListFlightsHandler handles GET /api/v1/flights, ordered by departure
// time then source name.
func ListFlightsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out []FlightDTO
		deps.read(func() {
			for _, f := range deps.Net.FlightsByDeparture() {
				out = append(out, toFlightDTO(f))
			}
		})
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// AddFlightHandler handles POST /api/v1/flights. A scheduling clash is
// reported as 409 with the conflicting flight's details.
func AddFlightHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddFlightRequest
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		day, err := clock.ParseWeekday(req.Weekday)
		var departure clock.Minute
		if err == nil {
			departure, err = clock.ParseDayTime(day, req.Time)
		}
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid departure time: use a weekday name and 24h HH:MM")
			return
		}
		if req.Capacity <= 0 {
			respondWithError(w, http.StatusBadRequest, "capacity must be a positive integer")
			return
		}
		var (
			dto    FlightDTO
			apiErr error
		)
		deps.write(func() {
			source := deps.Net.FindLocation(req.Source)
			if source == nil {
				apiErr = &network.NotFoundError{Kind: "location", Key: req.Source}
				return
			}
			destination := deps.Net.FindLocation(req.Destination)
			if destination == nil {
				apiErr = &network.NotFoundError{Kind: "location", Key: req.Destination}
				return
			}
			if source == destination {
				apiErr = &network.ValidationError{Field: "destination", Reason: "source and destination cannot be the same place"}
				return
			}
			f, err := deps.Net.AddFlight(departure, source, destination, req.Capacity)
			if err != nil {
				apiErr = err
				return
			}
			dto = toFlightDTO(f)
		})
		if apiErr != nil {
			var conflict *network.ConflictError
			var notFound *network.NotFoundError
			switch {
			case errors.As(apiErr, &conflict):
				deps.Metrics.ConflictsRejectedTotal.Inc()
				respondWithError(w, http.StatusConflict, "scheduling conflict: "+conflict.Error())
			case errors.As(apiErr, &notFound):
				respondWithError(w, http.StatusNotFound, apiErr.Error())
			default:
				respondWithError(w, http.StatusBadRequest, apiErr.Error())
			}
			return
		}
		deps.Metrics.FlightsAddedTotal.Inc()
		logging.Info("flight added", "id", dto.ID, "source", dto.Source, "destination", dto.Destination)
		respondWithSuccess(w, http.StatusCreated, &dto)
	}
}

func flightID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// GetFlightHandler handles GET /api/v1/flights/{id}.
func GetFlightHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := flightID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}
		var (
			dto   FlightDTO
			found bool
		)
		deps.read(func() {
			if f := deps.Net.FindFlight(id); f != nil {
				dto = toFlightDTO(f)
				found = true
			}
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "flight not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// BookFlightHandler handles POST /api/v1/flights/{id}/book. The count
// query parameter defaults to 1; overbooking is clipped at capacity.
func BookFlightHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := flightID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}
		count := 1
		if qs := r.URL.Query().Get("count"); qs != "" {
			n, err := strconv.Atoi(qs)
			if err != nil || n < 0 {
				respondWithError(w, http.StatusBadRequest, "invalid number of passengers to book")
				return
			}
			count = n
		}
		var (
			dto   BookingDTO
			found bool
		)
		deps.write(func() {
			f := deps.Net.FindFlight(id)
			if f == nil {
				return
			}
			found = true
			booked, total := f.Book(count)
			dto = BookingDTO{
				FlightID:     f.ID,
				Requested:    count,
				Booked:       booked,
				TotalCharged: total,
				Full:         f.Full(),
			}
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "flight not found")
			return
		}
		deps.Metrics.SeatsBookedTotal.Add(float64(dto.Booked))
		logging.Info("seats booked", "flight_id", id, "booked", dto.Booked, "charged", dto.TotalCharged)
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// RemoveFlightHandler handles DELETE /api/v1/flights/{id}.
func RemoveFlightHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := flightID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}
		var (
			dto   FlightDTO
			found bool
		)
		deps.write(func() {
			f := deps.Net.FindFlight(id)
			if f == nil {
				return
			}
			dto = toFlightDTO(f)
			found = true
			deps.Net.RemoveFlight(f)
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "flight not found")
			return
		}
		logging.Info("flight removed", "flight_id", id)
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// ResetFlightHandler handles POST /api/v1/flights/{id}/reset, clearing
// all bookings.
func ResetFlightHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := flightID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}
		var (
			dto   FlightDTO
			found bool
		)
		deps.write(func() {
			f := deps.Net.FindFlight(id)
			if f == nil {
				return
			}
			found = true
			f.Reset()
			dto = toFlightDTO(f)
		})
		if !found {
			respondWithError(w, http.StatusNotFound, "flight not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// ImportFlightsHandler handles POST /api/v1/flights/import with a CSV
// body, one record per line.
func ImportFlightsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			sum store.Summary
			err error
		)
		deps.write(func() {
			sum, err = store.ImportFlights(deps.Net, r.Body)
		})
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "error reading import body")
			return
		}
		logging.Info("flights imported", "imported", sum.Imported, "invalid", sum.Invalid)
		dto := ImportDTO{Imported: sum.Imported, Invalid: sum.Invalid}
		respondWithSuccess(w, http.StatusOK, &dto)
	}
}

// ExportFlightsHandler handles GET /api/v1/flights/export, writing the
// CSV records in insertion order.
func ExportFlightsHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		deps.read(func() {
			_, _ = store.ExportFlights(deps.Net, w)
		})
	}
}
