package network

import (
	"math"
	"sort"
	"strings"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
)

// earthRadiusKm for the haversine formula.
const earthRadiusKm = 6371.0

// Location is a node in the flight network. Identity is the name,
// compared case-insensitively. A location owns its edge lists; the
// flights in them hold non-owning back-references.
type Location struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Coefficient float64

	departures []*Flight
	arrivals   []*Flight
}

// NewLocation validates coordinates and demand coefficient.
// Latitude must be within [-85, 85], longitude within [-180, 180] and
// the coefficient within [-1, 1].
func NewLocation(name string, lat, lon, coefficient float64) (*Location, error) {
	if lat < -85 || lat > 85 {
		return nil, &ValidationError{Field: "latitude", Reason: "must be a number of degrees between -85 and +85"}
	}
	if lon < -180 || lon > 180 {
		return nil, &ValidationError{Field: "longitude", Reason: "must be a number of degrees between -180 and +180"}
	}
	if coefficient < -1 || coefficient > 1 {
		return nil, &ValidationError{Field: "demand coefficient", Reason: "must be a number between -1 and +1"}
	}
	return &Location{Name: name, Latitude: lat, Longitude: lon, Coefficient: coefficient}, nil
}

// SameName reports whether the location goes by the given name,
// ignoring case.
func (l *Location) SameName(name string) bool {
	return strings.EqualFold(l.Name, name)
}

// Departures returns the departing flights in insertion order.
func (l *Location) Departures() []*Flight { return l.departures }

// Arrivals returns the arriving flights in insertion order.
func (l *Location) Arrivals() []*Flight { return l.arrivals }

func (l *Location) addDeparture(f *Flight) { l.departures = append(l.departures, f) }
func (l *Location) addArrival(f *Flight)   { l.arrivals = append(l.arrivals, f) }

func removeFlight(list []*Flight, f *Flight) []*Flight {
	for i, x := range list {
		if x == f {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (l *Location) removeDeparture(f *Flight) { l.departures = removeFlight(l.departures, f) }
func (l *Location) removeArrival(f *Flight)   { l.arrivals = removeFlight(l.arrivals, f) }

// EventKind distinguishes a departure event from an arrival event at a
// location.
type EventKind int

const (
	Departure EventKind = iota
	Arrival
)

// Label is the schedule-listing prefix for the event kind.
func (k EventKind) Label() string {
	if k == Departure {
		return "Departure to"
	}
	return "Arrival from"
}

// Preposition phrases the kind relative to a location, for conflict
// reporting.
func (k EventKind) Preposition() string {
	if k == Departure {
		return "departing from"
	}
	return "arriving at"
}

// Event is a single departure or arrival at a location, recomputed on
// demand from the flight state and never stored.
type Event struct {
	FlightID int
	Time     clock.Minute
	Kind     EventKind
	Other    string // the location at the far end of the flight
}

// DepartureEvents returns this location's departures as events sorted by
// time.
func (l *Location) DepartureEvents() []Event {
	events := make([]Event, 0, len(l.departures))
	for _, f := range l.departures {
		events = append(events, Event{
			FlightID: f.ID,
			Time:     f.DepartureTime,
			Kind:     Departure,
			Other:    f.Destination.Name,
		})
	}
	sortEvents(events)
	return events
}

// ArrivalEvents returns this location's arrivals as events sorted by time.
func (l *Location) ArrivalEvents() []Event {
	events := make([]Event, 0, len(l.arrivals))
	for _, f := range l.arrivals {
		events = append(events, Event{
			FlightID: f.ID,
			Time:     f.ArrivalTime(),
			Kind:     Arrival,
			Other:    f.Source.Name,
		})
	}
	sortEvents(events)
	return events
}

// ScheduleEvents returns all departures and arrivals sorted by time.
func (l *Location) ScheduleEvents() []Event {
	events := append(l.ArrivalEvents(), l.DepartureEvents()...)
	sortEvents(events)
	return events
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
}

// Distance returns the great-circle distance in kilometres between two
// locations, via the haversine formula.
func Distance(a, b *Location) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
