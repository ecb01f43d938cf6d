package network

import (
	"sort"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
)

// conflictWindow is the exclusion zone around every event at a location:
// two events at the same location must be 60 or more minutes apart.
const conflictWindow = 60

// CheckConflict rejects a candidate flight when either of its events
// (departure at the source, arrival at the destination) falls strictly
// within 60 minutes of any existing event at that location. The four
// event lists are checked in a fixed order and the first clash wins:
// source departures, source arrivals, destination departures,
// destination arrivals.
//
// The candidate must not yet be attached to the network.
func CheckConflict(f *Flight) error {
	departure := Event{FlightID: f.ID, Time: f.DepartureTime, Kind: Departure, Other: f.Destination.Name}
	arrival := Event{FlightID: f.ID, Time: f.ArrivalTime(), Kind: Arrival, Other: f.Source.Name}

	checks := []struct {
		candidate Event
		at        *Location
		against   []Event
	}{
		{departure, f.Source, f.Source.DepartureEvents()},
		{departure, f.Source, f.Source.ArrivalEvents()},
		{arrival, f.Destination, f.Destination.DepartureEvents()},
		{arrival, f.Destination, f.Destination.ArrivalEvents()},
	}
	for _, c := range checks {
		if hit := nearestWithinWindow(c.candidate, c.against); hit != nil {
			return &ConflictError{
				FlightID: hit.FlightID,
				Location: c.at.Name,
				Time:     clock.Normalize(int(hit.Time)),
				Kind:     hit.Kind,
			}
		}
	}
	return nil
}

// ghost is an event copied into the previous, current or next week so
// that neighbors across the Sunday/Monday seam compare as plain numbers.
type ghost struct {
	event     Event
	time      int // event time shifted by -week, 0 or +week
	candidate bool
}

// nearestWithinWindow finds the existing event nearest in cyclic time to
// the candidate and returns it when it is strictly closer than the
// 60-minute window, nil otherwise.
//
// The week is a cycle, so a plain sorted scan would miss neighbors that
// wrap past the boundary. Instead the working set (existing events plus
// the candidate) is tripled: every element gains a copy one week earlier
// and one week later. In that enlarged sorted set the candidate's true
// cyclic neighbors are simply its immediate predecessor and successor.
func nearestWithinWindow(candidate Event, existing []Event) *Event {
	// Slice order matters for ties: earlier-week copies first, the
	// candidate after the existing events, later-week copies last. The
	// stable sort then keeps equal-time entries in exactly that order,
	// so the candidate always has a predecessor and a successor.
	working := make([]ghost, 0, 3*(len(existing)+1))
	for shift := -1; shift <= 1; shift++ {
		for _, e := range existing {
			working = append(working, ghost{event: e, time: int(e.Time) + shift*clock.MinutesPerWeek})
		}
		working = append(working, ghost{
			event:     candidate,
			time:      int(candidate.Time) + shift*clock.MinutesPerWeek,
			candidate: true,
		})
	}
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].time < working[j].time
	})

	at := -1
	for i, g := range working {
		if g.candidate && g.time == int(candidate.Time) {
			at = i
			break
		}
	}
	// The candidate's own shifted copies bracket it a full week away, so
	// both neighbors exist whenever the list is non-empty.
	if at <= 0 || at >= len(working)-1 {
		return nil
	}
	if succ := working[at+1]; !succ.candidate && succ.time-int(candidate.Time) < conflictWindow {
		return &succ.event
	}
	if pred := working[at-1]; !pred.candidate && int(candidate.Time)-pred.time < conflictWindow {
		return &pred.event
	}
	return nil
}
