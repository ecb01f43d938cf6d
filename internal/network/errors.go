package network

import (
	"fmt"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError reports a location name collision.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("location %q already exists", e.Name)
}

// NotFoundError reports an unknown flight id or location name.
type NotFoundError struct {
	Kind string // "flight" or "location"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// ConflictError reports a scheduling clash within the 60-minute window.
// It carries enough detail for the caller to render the clash.
type ConflictError struct {
	FlightID int
	Location string
	Time     clock.Minute
	Kind     EventKind // whether the clashing flight departs from or arrives at Location
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("clashes with Flight %d %s %s on %s",
		e.FlightID, e.Kind.Preposition(), e.Location, clock.Format(e.Time))
}
