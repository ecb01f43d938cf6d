package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/travel"
)

const tableRule = "-------------------------------------------------------"

const pathRule = "-------------------------------------------------------------"

// groupThousands renders a distance rounded to whole kilometres with
// comma grouping, e.g. 16704 -> "16,704".
func groupThousands(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func renderFlightTable(w io.Writer, flights []*network.Flight) {
	fmt.Fprintln(w, "Flights")
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "%-4s %-12s%-12s%s --> %s\n", "ID", "Departure", "Arrival", "Source", "Destination")
	fmt.Fprintln(w, tableRule)
	if len(flights) == 0 {
		fmt.Fprintln(w, "(None)")
		return
	}
	for _, f := range flights {
		fmt.Fprintf(w, "%4d %-12s%-12s%s --> %s\n", f.ID,
			clock.FormatShort(f.DepartureTime), clock.FormatShort(f.ArrivalTime()),
			f.Source.Name, f.Destination.Name)
	}
}

func renderFlightDetail(w io.Writer, f *network.Flight) {
	fmt.Fprintf(w, "Flight %d\n", f.ID)
	fmt.Fprintf(w, "%-14s%-10s%s\n", "Departure:", clock.FormatShort(f.DepartureTime), f.Source.Name)
	fmt.Fprintf(w, "%-14s%-10s%s\n", "Arrival:", clock.FormatShort(f.ArrivalTime()), f.Destination.Name)
	fmt.Fprintf(w, "%-14s%skm\n", "Distance:", groupThousands(f.Distance()))
	fmt.Fprintf(w, "%-14s%s\n", "Duration:", clock.FormatDuration(f.Duration()))
	fmt.Fprintf(w, "%-14s$%.2f\n", "Ticket Cost:", f.Price())
	fmt.Fprintf(w, "%-14s%d/%d\n", "Passengers:", f.Booked, f.Capacity)
}

func renderLocationDetail(w io.Writer, l *network.Location) {
	fmt.Fprintf(w, "%-13s%s\n", "Location:", l.Name)
	fmt.Fprintf(w, "%-13s%.6f\n", "Latitude:", l.Latitude)
	fmt.Fprintf(w, "%-13s%.6f\n", "Longitude:", l.Longitude)
	fmt.Fprintf(w, "%-13s%+.4f\n", "Demand:", l.Coefficient)
}

func renderEventTable(w io.Writer, title string, events []network.Event) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "%-4s %-12s%s\n", "ID", "Time", "Departure/Arrival to/from Location")
	fmt.Fprintln(w, tableRule)
	for _, e := range events {
		fmt.Fprintf(w, "%4d %-12s%s %s\n", e.FlightID,
			clock.FormatShort(e.Time), e.Kind.Label(), e.Other)
	}
}

func renderPath(w io.Writer, p travel.Path) {
	fmt.Fprintf(w, "%-18s%d\n", "Legs:", len(p.Legs))
	fmt.Fprintf(w, "%-18s%s\n", "Total Duration:", clock.FormatHourMinute(p.TotalDuration()))
	fmt.Fprintf(w, "%-18s$%.2f\n", "Total Cost:", p.TotalCost())
	fmt.Fprintln(w, pathRule)
	fmt.Fprintln(w, "ID   Cost      Departure   Arrival     Source --> Destination")
	fmt.Fprintln(w, pathRule)
	layovers := p.Layovers()
	for i, f := range p.Legs {
		fmt.Fprintf(w, "%4d $%8.2f %9s   %9s   %s --> %s\n", f.ID, f.Price(),
			clock.FormatShort(f.DepartureTime), clock.FormatShort(f.ArrivalTime()),
			f.Source.Name, f.Destination.Name)
		if i < len(layovers) {
			fmt.Fprintf(w, "LAYOVER %s at %s\n",
				clock.FormatHourMinute(layovers[i]), f.Destination.Name)
		}
	}
}

func renderConflict(w io.Writer, err *network.ConflictError) {
	fmt.Fprintf(w, "Scheduling conflict! This flight clashes with Flight %d %s %s on %s.\n",
		err.FlightID, err.Kind.Preposition(), err.Location, clock.Format(err.Time))
}

// pluralize saves the import/export summaries from "1 flights".
func pluralize(count int, singular string) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}
