package api

import (
	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/travel"
)

// LocationDTO is the JSON shape of a location.
type LocationDTO struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Coefficient float64 `json:"coefficient"`
	Departures  int     `json:"departures"`
	Arrivals    int     `json:"arrivals"`
}

func toLocationDTO(l *network.Location) LocationDTO {
	return LocationDTO{
		Name:        l.Name,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Coefficient: l.Coefficient,
		Departures:  len(l.Departures()),
		Arrivals:    len(l.Arrivals()),
	}
}

// FlightDTO is the JSON shape of a flight, with all derived fields
// computed at encode time.
type FlightDTO struct {
	ID          int     `json:"id"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Booked      int     `json:"booked"`
	Full        bool    `json:"full"`
}

func toFlightDTO(f *network.Flight) FlightDTO {
	return FlightDTO{
		ID:          f.ID,
		Departure:   clock.Format(f.DepartureTime),
		Arrival:     clock.Format(f.ArrivalTime()),
		Source:      f.Source.Name,
		Destination: f.Destination.Name,
		DistanceKm:  f.Distance(),
		Duration:    clock.FormatDuration(f.Duration()),
		Price:       f.Price(),
		Capacity:    f.Capacity,
		Booked:      f.Booked,
		Full:        f.Full(),
	}
}

// EventDTO is one departure or arrival in a schedule listing.
type EventDTO struct {
	FlightID int    `json:"flight_id"`
	Time     string `json:"time"`
	Kind     string `json:"kind"`
	Other    string `json:"other_location"`
}

func toEventDTOs(events []network.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		kind := "departure"
		if e.Kind == network.Arrival {
			kind = "arrival"
		}
		out = append(out, EventDTO{
			FlightID: e.FlightID,
			Time:     clock.Format(e.Time),
			Kind:     kind,
			Other:    e.Other,
		})
	}
	return out
}

// PathDTO is a ranked travel result.
type PathDTO struct {
	Legs           []FlightDTO `json:"legs"`
	LayoverMinutes []int       `json:"layover_minutes,omitempty"`
	TotalCost      float64     `json:"total_cost"`
	FlightTime     string      `json:"flight_time"`
	LayoverTime    string      `json:"layover_time"`
	TotalDuration  string      `json:"total_duration"`
	Stopovers      int         `json:"stopovers"`
}

func toPathDTO(p travel.Path) PathDTO {
	legs := make([]FlightDTO, 0, len(p.Legs))
	for _, f := range p.Legs {
		legs = append(legs, toFlightDTO(f))
	}
	return PathDTO{
		Legs:           legs,
		LayoverMinutes: p.Layovers(),
		TotalCost:      p.TotalCost(),
		FlightTime:     clock.FormatHourMinute(p.FlightTime()),
		LayoverTime:    clock.FormatHourMinute(p.LayoverTime()),
		TotalDuration:  clock.FormatHourMinute(p.TotalDuration()),
		Stopovers:      p.Stopovers(),
	}
}

// BookingDTO reports the outcome of a booking request.
type BookingDTO struct {
	FlightID     int     `json:"flight_id"`
	Requested    int     `json:"requested"`
	Booked       int     `json:"booked"`
	TotalCharged float64 `json:"total_charged"`
	Full         bool    `json:"full"`
}

// ImportDTO reports a bulk CSV import.
type ImportDTO struct {
	Imported int `json:"imported"`
	Invalid  int `json:"invalid"`
}
