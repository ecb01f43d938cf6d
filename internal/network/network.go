// Package network holds the in-memory flight network: locations, the
// flights between them, conflict detection and dynamic pricing. A single
// Network value replaces any process-wide state so tests and callers can
// build isolated instances.
package network

import (
	"sort"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
)

// Network is the shared collection of locations and flights. It is not
// safe for concurrent use; callers that share one across goroutines must
// serialize access at this boundary.
type Network struct {
	locations    []*Location
	flights      []*Flight
	nextFlightID int
}

// New returns an empty network.
func New() *Network {
	return &Network{}
}

// AddLocation registers a location. The name must not collide with an
// existing one, compared case-insensitively.
func (n *Network) AddLocation(loc *Location) error {
	if n.FindLocation(loc.Name) != nil {
		return &DuplicateError{Name: loc.Name}
	}
	n.locations = append(n.locations, loc)
	return nil
}

// FindLocation looks a location up by name, ignoring case. Returns nil
// when absent.
func (n *Network) FindLocation(name string) *Location {
	for _, loc := range n.locations {
		if loc.SameName(name) {
			return loc
		}
	}
	return nil
}

// FindFlight looks a flight up by id. Returns nil when absent.
func (n *Network) FindFlight(id int) *Flight {
	for _, f := range n.flights {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// AddFlight validates the candidate against the 60-minute conflict rule
// and, if clear, assigns it the next id and attaches it to both
// endpoints' edge lists.
func (n *Network) AddFlight(departure clock.Minute, source, destination *Location, capacity int) (*Flight, error) {
	f := &Flight{
		ID:            n.nextFlightID,
		DepartureTime: departure,
		Source:        source,
		Destination:   destination,
		Capacity:      capacity,
	}
	if err := CheckConflict(f); err != nil {
		return nil, err
	}
	n.attach(f)
	return f, nil
}

// ImportFlight attaches a flight without running the conflict check,
// trusting the record as previously exported.
func (n *Network) ImportFlight(departure clock.Minute, source, destination *Location, capacity, booked int) *Flight {
	f := &Flight{
		ID:            n.nextFlightID,
		DepartureTime: departure,
		Source:        source,
		Destination:   destination,
		Capacity:      capacity,
		Booked:        booked,
	}
	n.attach(f)
	return f
}

func (n *Network) attach(f *Flight) {
	n.nextFlightID++
	n.flights = append(n.flights, f)
	f.Source.addDeparture(f)
	f.Destination.addArrival(f)
}

// RemoveFlight detaches a flight from the network and from both edge
// lists. Removing an already-removed flight is a no-op.
func (n *Network) RemoveFlight(f *Flight) {
	for i, x := range n.flights {
		if x == f {
			n.flights = append(n.flights[:i], n.flights[i+1:]...)
			break
		}
	}
	f.Source.removeDeparture(f)
	f.Destination.removeArrival(f)
}

// Flights returns all flights in insertion order.
func (n *Network) Flights() []*Flight { return n.flights }

// Locations returns all locations in insertion order.
func (n *Network) Locations() []*Location { return n.locations }

// FlightsByDeparture returns the flights sorted by departure time, then
// by source name.
func (n *Network) FlightsByDeparture() []*Flight {
	out := make([]*Flight, len(n.flights))
	copy(out, n.flights)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DepartureTime != out[j].DepartureTime {
			return out[i].DepartureTime < out[j].DepartureTime
		}
		return out[i].Source.Name < out[j].Source.Name
	})
	return out
}

// LocationsByName returns the locations sorted alphabetically.
func (n *Network) LocationsByName() []*Location {
	out := make([]*Location, len(n.locations))
	copy(out, n.locations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
