// Package cli is the line-oriented command surface over the flight
// network: a prompt loop, the command dispatcher and the table
// rendering. All real work happens in the network, store and travel
// packages; this layer parses words and prints results.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/store"
	"github.com/reneeli0223/Flight-Scheduler/internal/travel"
)

// REPL reads commands line by line and applies them to one network.
type REPL struct {
	net *network.Network
	out io.Writer
	log *zap.SugaredLogger
}

// New builds a REPL over the given network, writing to out.
func New(net *network.Network, out io.Writer, log *zap.SugaredLogger) *REPL {
	return &REPL{net: net, out: out, log: log}
}

// Run loops until EOF or the EXIT command.
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "User: ")
		if !scanner.Scan() {
			return
		}
		if !r.Dispatch(scanner.Text()) {
			return
		}
		fmt.Fprintln(r.out)
	}
}

// Dispatch runs a single command line. It returns false when the
// session should end.
func (r *REPL) Dispatch(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		r.invalidCommand()
		return true
	}
	switch strings.ToLower(words[0]) {
	case "flight":
		r.flight(words)
	case "flights":
		renderFlightTable(r.out, r.net.FlightsByDeparture())
	case "location":
		r.location(words)
	case "locations":
		r.listLocations()
	case "schedule", "departures", "arrivals":
		r.locationEvents(words)
	case "travel":
		r.travel(words)
	case "help":
		fmt.Fprintln(r.out, helpText)
	case "exit":
		fmt.Fprintln(r.out, "Application closed.")
		return false
	default:
		r.invalidCommand()
	}
	return true
}

func (r *REPL) invalidCommand() {
	fmt.Fprintln(r.out, "Invalid command. Type 'help' for a list of commands.")
}

func (r *REPL) flight(words []string) {
	if len(words) < 2 {
		fmt.Fprintln(r.out, "Usage:")
		fmt.Fprintln(r.out, "FLIGHT <id> [BOOK/REMOVE/RESET] [num]")
		fmt.Fprintln(r.out, "FLIGHT ADD <departure time> <from> <to> <capacity>")
		fmt.Fprintln(r.out, "FLIGHT IMPORT/EXPORT <filename>")
		return
	}
	switch strings.ToLower(words[1]) {
	case "add":
		r.addFlight(words)
	case "import":
		r.importFlights(words)
	case "export":
		r.exportFlights(words)
	default:
		f := r.flightByID(words[1])
		if f == nil {
			return
		}
		if len(words) < 3 {
			renderFlightDetail(r.out, f)
			return
		}
		switch strings.ToLower(words[2]) {
		case "book":
			r.bookFlight(f, words)
		case "remove":
			r.net.RemoveFlight(f)
			fmt.Fprintf(r.out, "Removed Flight %d, %s %s --> %s, from the flight schedule.\n",
				f.ID, clock.FormatShort(f.DepartureTime), f.Source.Name, f.Destination.Name)
		case "reset":
			f.Reset()
			fmt.Fprintf(r.out, "Reset passengers booked to 0 for Flight %d, %s %s --> %s.\n",
				f.ID, clock.FormatShort(f.DepartureTime), f.Source.Name, f.Destination.Name)
		default:
			renderFlightDetail(r.out, f)
		}
	}
}

func (r *REPL) flightByID(word string) *network.Flight {
	id, err := strconv.Atoi(word)
	if err != nil {
		fmt.Fprintln(r.out, "Invalid Flight ID.")
		return nil
	}
	f := r.net.FindFlight(id)
	if f == nil {
		fmt.Fprintln(r.out, "Invalid Flight ID.")
	}
	return f
}

func (r *REPL) addFlight(words []string) {
	if len(words) < 7 {
		fmt.Fprintln(r.out, "Usage:   FLIGHT ADD <departure time> <from> <to> <capacity>")
		fmt.Fprintln(r.out, "Example: FLIGHT ADD Monday 18:00 Sydney Melbourne 120")
		return
	}
	day, err := clock.ParseWeekday(words[2])
	var departure clock.Minute
	if err == nil {
		departure, err = clock.ParseDayTime(day, words[3])
	}
	if err != nil {
		fmt.Fprintln(r.out, "Invalid departure time. Use the format <day_of_week> <hour:minute>, with 24h time.")
		return
	}
	if strings.EqualFold(words[4], words[5]) {
		fmt.Fprintln(r.out, "Source and destination cannot be the same place.")
		return
	}
	source := r.net.FindLocation(words[4])
	if source == nil {
		fmt.Fprintln(r.out, "Invalid starting location.")
		return
	}
	destination := r.net.FindLocation(words[5])
	if destination == nil {
		fmt.Fprintln(r.out, "Invalid ending location.")
		return
	}
	capacity, err := strconv.Atoi(words[6])
	if err != nil || capacity <= 0 {
		fmt.Fprintln(r.out, "Invalid positive integer capacity.")
		return
	}
	f, err := r.net.AddFlight(departure, source, destination, capacity)
	if err != nil {
		var conflict *network.ConflictError
		if errors.As(err, &conflict) {
			renderConflict(r.out, conflict)
		} else {
			fmt.Fprintln(r.out, err)
		}
		return
	}
	r.log.Infow("flight added", "id", f.ID, "source", source.Name, "destination", destination.Name)
	fmt.Fprintf(r.out, "Successfully added Flight %d.\n", f.ID)
}

func (r *REPL) bookFlight(f *network.Flight, words []string) {
	count := 1
	if len(words) > 3 {
		n, err := strconv.Atoi(words[3])
		if err != nil || n < 0 {
			fmt.Fprintln(r.out, "Invalid number of passengers to book.")
			return
		}
		count = n
	}
	booked, total := f.Book(count)
	fmt.Fprintf(r.out, "Booked %d passengers on flight %d for a total cost of $%.2f\n",
		booked, f.ID, total)
	if f.Full() {
		fmt.Fprintln(r.out, "Flight is now full.")
	}
}

func (r *REPL) importFlights(words []string) {
	file, ok := r.openForRead(words)
	if !ok {
		return
	}
	defer file.Close()
	sum, err := store.ImportFlights(r.net, file)
	if err != nil {
		fmt.Fprintln(r.out, "Error reading file.")
		return
	}
	fmt.Fprintf(r.out, "Imported %d %s.\n", sum.Imported, pluralize(sum.Imported, "flight"))
	r.reportInvalid(sum.Invalid)
}

func (r *REPL) exportFlights(words []string) {
	file, ok := r.openForWrite(words)
	if !ok {
		return
	}
	defer file.Close()
	count, err := store.ExportFlights(r.net, file)
	if err != nil {
		fmt.Fprintln(r.out, "Error writing file.")
		return
	}
	if count > 0 {
		fmt.Fprintf(r.out, "Exported %d %s.\n", count, pluralize(count, "flight"))
	}
}

func (r *REPL) location(words []string) {
	if len(words) < 2 {
		fmt.Fprintln(r.out, "Usage:")
		fmt.Fprintln(r.out, "LOCATION <name>")
		fmt.Fprintln(r.out, "LOCATION ADD <name> <latitude> <longitude> <demand_coefficient>")
		fmt.Fprintln(r.out, "LOCATION IMPORT/EXPORT <filename>")
		return
	}
	switch strings.ToLower(words[1]) {
	case "add":
		r.addLocation(words)
	case "import":
		r.importLocations(words)
	case "export":
		r.exportLocations(words)
	default:
		loc := r.net.FindLocation(words[1])
		if loc == nil {
			fmt.Fprintln(r.out, "Invalid location name.")
			return
		}
		renderLocationDetail(r.out, loc)
	}
}

func (r *REPL) addLocation(words []string) {
	if len(words) < 6 {
		fmt.Fprintln(r.out, "Usage:   LOCATION ADD <name> <lat> <long> <demand_coefficient>")
		fmt.Fprintln(r.out, "Example: LOCATION ADD Sydney -33.847927 150.651786 0.2")
		return
	}
	name := words[2]
	if r.net.FindLocation(name) != nil {
		fmt.Fprintln(r.out, "This location already exists.")
		return
	}
	lat, err := strconv.ParseFloat(words[3], 64)
	if err != nil || lat < -85 || lat > 85 {
		fmt.Fprintln(r.out, "Invalid latitude. It must be a number of degrees between -85 and +85.")
		return
	}
	lon, err := strconv.ParseFloat(words[4], 64)
	if err != nil || lon < -180 || lon > 180 {
		fmt.Fprintln(r.out, "Invalid longitude. It must be a number of degrees between -180 and +180.")
		return
	}
	coefficient, err := strconv.ParseFloat(words[5], 64)
	if err != nil || coefficient < -1 || coefficient > 1 {
		fmt.Fprintln(r.out, "Invalid demand coefficient. It must be a number between -1 and +1.")
		return
	}
	loc, err := network.NewLocation(name, lat, lon, coefficient)
	if err == nil {
		err = r.net.AddLocation(loc)
	}
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	r.log.Infow("location added", "name", name)
	fmt.Fprintf(r.out, "Successfully added location %s.\n", name)
}

func (r *REPL) listLocations() {
	locations := r.net.LocationsByName()
	fmt.Fprintf(r.out, "Locations (%d):\n", len(locations))
	if len(locations) == 0 {
		fmt.Fprintln(r.out, "(None)")
		return
	}
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}
	fmt.Fprintln(r.out, strings.Join(names, ", "))
}

func (r *REPL) locationEvents(words []string) {
	if len(words) < 2 {
		r.invalidCommand()
		return
	}
	loc := r.net.FindLocation(words[1])
	if loc == nil {
		fmt.Fprintln(r.out, "This location does not exist in the system.")
		return
	}
	var events []network.Event
	switch strings.ToLower(words[0]) {
	case "schedule":
		events = loc.ScheduleEvents()
	case "departures":
		events = loc.DepartureEvents()
	case "arrivals":
		events = loc.ArrivalEvents()
	}
	renderEventTable(r.out, loc.Name, events)
}

func (r *REPL) importLocations(words []string) {
	file, ok := r.openForRead(words)
	if !ok {
		return
	}
	defer file.Close()
	sum, err := store.ImportLocations(r.net, file)
	if err != nil {
		fmt.Fprintln(r.out, "Error reading file.")
		return
	}
	fmt.Fprintf(r.out, "Imported %d %s.\n", sum.Imported, pluralize(sum.Imported, "location"))
	r.reportInvalid(sum.Invalid)
}

func (r *REPL) exportLocations(words []string) {
	file, ok := r.openForWrite(words)
	if !ok {
		return
	}
	defer file.Close()
	count, err := store.ExportLocations(r.net, file)
	if err != nil {
		fmt.Fprintln(r.out, "Error writing file.")
		return
	}
	if count > 0 {
		fmt.Fprintf(r.out, "Exported %d %s.\n", count, pluralize(count, "location"))
	}
}

func (r *REPL) openForRead(words []string) (*os.File, bool) {
	if len(words) < 3 {
		fmt.Fprintln(r.out, "Error reading file.")
		return nil, false
	}
	file, err := os.Open(words[2])
	if err != nil {
		fmt.Fprintln(r.out, "Error reading file.")
		return nil, false
	}
	return file, true
}

func (r *REPL) openForWrite(words []string) (*os.File, bool) {
	if len(words) < 3 {
		fmt.Fprintln(r.out, "Error writing file.")
		return nil, false
	}
	file, err := os.Create(words[2])
	if err != nil {
		fmt.Fprintln(r.out, "Error writing file.")
		return nil, false
	}
	return file, true
}

func (r *REPL) reportInvalid(count int) {
	if count == 1 {
		fmt.Fprintln(r.out, "1 line was invalid.")
	} else if count > 1 {
		fmt.Fprintf(r.out, "%d lines were invalid.\n", count)
	}
}

func (r *REPL) travel(words []string) {
	if len(words) < 3 {
		fmt.Fprintln(r.out, "Usage: TRAVEL <from> <to> [cost/duration/stopovers/layover/flight_time]")
		return
	}
	criterion := travel.ByDefault
	nth := 0
	if len(words) >= 4 && !strings.EqualFold(words[3], "sort") {
		c, err := travel.ParseCriterion(words[3])
		if err != nil {
			fmt.Fprintln(r.out, "Invalid sorting property: must be either cost, duration, stopovers, layover, or flight_time.")
			return
		}
		criterion = c
	} else if len(words) >= 5 {
		// TRAVEL <from> <to> sort [n]; a malformed n falls back to 0.
		if n, err := strconv.Atoi(words[4]); err == nil {
			nth = n
		}
	}
	start := r.net.FindLocation(words[1])
	if start == nil {
		fmt.Fprintln(r.out, "Starting location not found.")
		return
	}
	end := r.net.FindLocation(words[2])
	if end == nil {
		fmt.Fprintln(r.out, "Ending location not found.")
		return
	}
	path, ok := travel.Find(r.net, start, end, criterion, nth)
	if !ok {
		fmt.Fprintf(r.out, "Sorry, no flights with 3 or less stopovers are available from %s to %s.\n",
			start.Name, end.Name)
		return
	}
	renderPath(r.out, path)
}

const helpText = `FLIGHTS - list all available flights ordered by departure time, then departure location name
FLIGHT ADD <departure time> <from> <to> <capacity> - add a flight
FLIGHT IMPORT/EXPORT <filename> - import/export flights to csv file
FLIGHT <id> - view information about a flight (from->to, departure arrival times, current ticket price, capacity, passengers booked)
FLIGHT <id> BOOK <num> - book a certain number of passengers for the flight at the current ticket price, and then adjust the ticket price to reflect the reduced capacity remaining. If no number is given, book 1 passenger. If the given number of bookings is more than the remaining capacity, only accept bookings until the capacity is full.
FLIGHT <id> REMOVE - remove a flight from the schedule
FLIGHT <id> RESET - reset the number of passengers booked to 0, and the ticket price to its original state.

LOCATIONS - list all available locations in alphabetical order
LOCATION ADD <name> <lat> <long> <demand_coefficient> - add a location
LOCATION <name> - view details about a location (it's name, coordinates, demand coefficient)
LOCATION IMPORT/EXPORT <filename> - import/export locations to csv file
SCHEDULE <location_name> - list all departing and arriving flights, in order of the time they arrive/depart
DEPARTURES <location_name> - list all departing flights, in order of departure time
ARRIVALS <location_name> - list all arriving flights, in order of arrival time

TRAVEL <from> <to> [sort] [n] - list the nth possible flight route between a starting location and destination, with a maximum of 3 stopovers. Default ordering is for shortest overall duration. If n is not provided, display the first one in the order. If n is larger than the number of flights available, display the last one in the ordering.

can have other orderings:
TRAVEL <from> <to> cost - minimum current cost
TRAVEL <from> <to> duration - minimum total duration
TRAVEL <from> <to> stopovers - minimum stopovers
TRAVEL <from> <to> layover - minimum layover time
TRAVEL <from> <to> flight_time - minimum flight time

HELP - outputs this help string.
EXIT - end the program.`
