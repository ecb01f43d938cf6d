// Package store reads and writes the network's CSV record formats.
// Import is line-at-a-time and forgiving: a bad line is counted and
// skipped, never aborting the batch.
package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

// Summary reports a bulk import: lines committed and lines skipped.
type Summary struct {
	Imported int
	Invalid  int
}

// FormatLocation renders the location record:
// "<name>,<lat>,<lon>,<coefficient>". Coordinates keep up to six decimal
// places with trailing zeros trimmed; the coefficient keeps one.
func FormatLocation(l *network.Location) string {
	return fmt.Sprintf("%s,%s,%s,%.1f",
		l.Name, formatCoordinate(l.Latitude), formatCoordinate(l.Longitude), l.Coefficient)
}

func formatCoordinate(v float64) string {
	if v == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// FormatFlight renders the flight record:
// "<Weekday> HH:MM,<source>,<destination>,<capacity>,<booked>".
func FormatFlight(f *network.Flight) string {
	return fmt.Sprintf("%s,%s,%s,%d,%d",
		clock.Format(f.DepartureTime), f.Source.Name, f.Destination.Name, f.Capacity, f.Booked)
}

// ExportLocations writes all locations sorted by name, one record per
// line. Returns the number of records written.
func ExportLocations(n *network.Network, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	locations := n.LocationsByName()
	for _, l := range locations {
		if _, err := fmt.Fprintln(bw, FormatLocation(l)); err != nil {
			return 0, err
		}
	}
	return len(locations), bw.Flush()
}

// ExportFlights writes all flights in insertion order, one record per
// line. Returns the number of records written.
func ExportFlights(n *network.Network, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	flights := n.Flights()
	for _, f := range flights {
		if _, err := fmt.Fprintln(bw, FormatFlight(f)); err != nil {
			return 0, err
		}
	}
	return len(flights), bw.Flush()
}

// ImportLocations reads location records and adds each valid one to the
// network. Malformed lines, out-of-range fields and duplicate names are
// counted as invalid and skipped.
func ImportLocations(n *network.Network, r io.Reader) (Summary, error) {
	var sum Summary
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		loc, err := parseLocation(scanner.Text())
		if err != nil || n.AddLocation(loc) != nil {
			sum.Invalid++
			continue
		}
		sum.Imported++
	}
	return sum, scanner.Err()
}

func parseLocation(line string) (*network.Location, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, err
	}
	coefficient, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, err
	}
	return network.NewLocation(fields[0], lat, lon, coefficient)
}

// ImportFlights reads flight records and attaches each valid one.
// Records are trusted as previously exported, so the conflict check is
// not re-run. Lines naming unknown locations, and malformed lines, are
// counted as invalid and skipped.
func ImportFlights(n *network.Network, r io.Reader) (Summary, error) {
	var sum Summary
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		departure, sourceName, destName, capacity, booked, err := parseFlight(scanner.Text())
		if err != nil {
			sum.Invalid++
			continue
		}
		source := n.FindLocation(sourceName)
		destination := n.FindLocation(destName)
		if source == nil || destination == nil {
			sum.Invalid++
			continue
		}
		n.ImportFlight(departure, source, destination, capacity, booked)
		sum.Imported++
	}
	return sum, scanner.Err()
}

func parseFlight(line string) (departure clock.Minute, source, dest string, capacity, booked int, err error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		err = fmt.Errorf("expected 5 fields, got %d", len(fields))
		return
	}
	timeFields := strings.Split(fields[0], " ")
	if len(timeFields) != 2 {
		err = fmt.Errorf("expected \"<Weekday> HH:MM\", got %q", fields[0])
		return
	}
	day, err := clock.ParseWeekday(timeFields[0])
	if err != nil {
		return
	}
	departure, err = clock.ParseDayTime(day, timeFields[1])
	if err != nil {
		return
	}
	source, dest = fields[1], fields[2]
	if capacity, err = strconv.Atoi(fields[3]); err != nil {
		return
	}
	booked, err = strconv.Atoi(fields[4])
	return
}
