package network

import (
	"math"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
)

// cruiseSpeedKmh converts great-circle distance into flight time.
const cruiseSpeedKmh = 720.0

// Flight is a weekly-recurring edge between two locations. Source and
// Destination are non-owning references; the locations' edge lists own
// flight membership.
type Flight struct {
	ID            int
	DepartureTime clock.Minute
	Source        *Location
	Destination   *Location
	Capacity      int
	Booked        int
}

// Distance is the great-circle length of the flight in kilometres.
func (f *Flight) Distance() float64 {
	return Distance(f.Source, f.Destination)
}

// Duration is the flight time in minutes, rounded to the nearest whole
// minute at a 720 km/h cruise.
func (f *Flight) Duration() int {
	hours := f.Distance() / cruiseSpeedKmh
	return int(math.Round(hours * 60))
}

// ArrivalTime is the departure time plus the flight duration, folded
// back into the week when it spills past Sunday.
func (f *Flight) ArrivalTime() clock.Minute {
	arrive := int(f.DepartureTime) + f.Duration()
	if arrive > clock.MinutesPerWeek {
		arrive -= clock.MinutesPerWeek
	}
	return clock.Minute(arrive)
}

// Full reports whether every seat is booked.
func (f *Flight) Full() bool {
	return f.Booked >= f.Capacity
}

// Price is the current ticket price. It is a pure function of the load
// factor and the demand asymmetry between the endpoints, so it moves
// with every booking.
//
// The demand multiplier y ramps in three pieces over the load factor x:
// a gentle discount up to half full, a linear rise through mid occupancy,
// and an arctan ceiling as the flight fills.
func (f *Flight) Price() float64 {
	x := float64(f.Booked) / float64(f.Capacity)
	var y float64
	switch {
	case x <= 0.5:
		y = -0.4*x + 1
	case x <= 0.7:
		y = x + 0.3
	default:
		y = 0.2/math.Pi*math.Atan(20*x-14) + 1
	}
	per100km := 30 + 4*(f.Destination.Coefficient-f.Source.Coefficient)
	return y * f.Distance() / 100 * per100km
}

// Book charges for up to count seats one at a time, at the price current
// when each seat is sold. It returns the seats actually booked and the
// total charged; a full flight books nothing.
func (f *Flight) Book(count int) (booked int, total float64) {
	if f.Full() || count <= 0 {
		return 0, 0
	}
	if remaining := f.Capacity - f.Booked; count > remaining {
		count = remaining
	}
	for i := 0; i < count; i++ {
		total += f.Price()
		f.Booked++
	}
	return count, total
}

// Reset clears all bookings, returning the ticket price to its base.
func (f *Flight) Reset() {
	f.Booked = 0
}

// Layover is the wait in minutes from one flight's arrival to the next
// flight's departure, going forward around the week.
func Layover(from, to *Flight) int {
	return clock.Until(from.ArrivalTime(), to.DepartureTime)
}
