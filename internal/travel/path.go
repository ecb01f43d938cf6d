// Package travel enumerates routes through the flight network and ranks
// them by selectable criteria. The search is breadth-limited to four
// legs (three stopovers); it does not attempt true shortest-path
// optimality beyond that bound.
package travel

import (
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

// Path is an ordered run of up to four connected flights: each leg's
// destination is the next leg's source.
type Path struct {
	Legs []*network.Flight
}

func (p Path) extend(f *network.Flight) Path {
	legs := make([]*network.Flight, 0, len(p.Legs)+1)
	legs = append(legs, p.Legs...)
	return Path{Legs: append(legs, f)}
}

// LastLocation is the destination of the final leg, nil for an empty
// path.
func (p Path) LastLocation() *network.Location {
	if len(p.Legs) == 0 {
		return nil
	}
	return p.Legs[len(p.Legs)-1].Destination
}

// TotalCost sums the legs' current ticket prices. Prices follow account
// load, so this is a snapshot, not a quote.
func (p Path) TotalCost() float64 {
	var total float64
	for _, f := range p.Legs {
		total += f.Price()
	}
	return total
}

// FlightTime sums the legs' durations in minutes.
func (p Path) FlightTime() int {
	var total int
	for _, f := range p.Legs {
		total += f.Duration()
	}
	return total
}

// LayoverTime sums the waits between consecutive legs, each measured
// forward around the week.
func (p Path) LayoverTime() int {
	var total int
	for i := 0; i+1 < len(p.Legs); i++ {
		total += network.Layover(p.Legs[i], p.Legs[i+1])
	}
	return total
}

// TotalDuration is flight time plus layover time.
func (p Path) TotalDuration() int {
	return p.FlightTime() + p.LayoverTime()
}

// Stopovers counts intermediate stops: legs minus two, floored at zero.
func (p Path) Stopovers() int {
	if len(p.Legs) < 2 {
		return 0
	}
	return len(p.Legs) - 2
}

// Layovers returns the per-connection waits in minutes, one entry per
// gap between consecutive legs.
func (p Path) Layovers() []int {
	if len(p.Legs) < 2 {
		return nil
	}
	out := make([]int, 0, len(p.Legs)-1)
	for i := 0; i+1 < len(p.Legs); i++ {
		out = append(out, network.Layover(p.Legs[i], p.Legs[i+1]))
	}
	return out
}
