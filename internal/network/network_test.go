package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

func mustLocation(t *testing.T, n *network.Network, name string, lat, lon, coefficient float64) *network.Location {
	t.Helper()
	loc, err := network.NewLocation(name, lat, lon, coefficient)
	require.NoError(t, err)
	require.NoError(t, n.AddLocation(loc))
	return loc
}

func mustMinute(t *testing.T, day clock.Weekday, hm string) clock.Minute {
	t.Helper()
	m, err := clock.ParseDayTime(day, hm)
	require.NoError(t, err)
	return m
}

func TestNewLocationValidation(t *testing.T) {
	cases := []struct {
		name          string
		lat, lon, coe float64
	}{
		{"lat too low", -86, 0, 0},
		{"lat too high", 85.5, 0, 0},
		{"lon too low", 0, -181, 0},
		{"lon too high", 0, 180.2, 0},
		{"coefficient too low", 0, 0, -1.1},
		{"coefficient too high", 0, 0, 1.01},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := network.NewLocation("X", c.lat, c.lon, c.coe)
			var verr *network.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	_, err := network.NewLocation("Edge", 85, -180, 1)
	require.NoError(t, err)
}

func TestAddLocationDuplicate(t *testing.T) {
	n := network.New()
	mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)

	dup, err := network.NewLocation("SYDNEY", 0, 0, 0)
	require.NoError(t, err)
	err = n.AddLocation(dup)
	var derr *network.DuplicateError
	require.ErrorAs(t, err, &derr)

	require.NotNil(t, n.FindLocation("sydney"))
	require.Nil(t, n.FindLocation("Melbourne"))
}

func TestAddFlightAssignsIDsAndEdges(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)

	f0, err := n.AddFlight(mustMinute(t, clock.Monday, "09:00"), syd, mel, 100)
	require.NoError(t, err)
	require.Equal(t, 0, f0.ID)

	f1, err := n.AddFlight(mustMinute(t, clock.Wednesday, "09:00"), syd, mel, 50)
	require.NoError(t, err)
	require.Equal(t, 1, f1.ID)

	require.Equal(t, []*network.Flight{f0, f1}, syd.Departures())
	require.Equal(t, []*network.Flight{f0, f1}, mel.Arrivals())
	require.Empty(t, syd.Arrivals())
	require.Same(t, f1, n.FindFlight(1))
}

func TestFlightDerivedValues(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)

	f, err := n.AddFlight(mustMinute(t, clock.Monday, "09:00"), syd, mel, 100)
	require.NoError(t, err)

	require.InDelta(t, 713.4, f.Distance(), 0.5)
	require.Equal(t, 59, f.Duration())
	require.Less(t, f.Duration(), 2*60)
	require.Equal(t, mustMinute(t, clock.Monday, "09:59"), f.ArrivalTime())
}

func TestArrivalTimeWrapsPastSunday(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)

	f, err := n.AddFlight(mustMinute(t, clock.Sunday, "23:30"), syd, mel, 100)
	require.NoError(t, err)
	// 59 minutes past Sunday 23:30 lands Monday 00:29.
	require.Equal(t, mustMinute(t, clock.Monday, "00:29"), f.ArrivalTime())
}

func TestRemoveFlightDetachesAndIsIdempotent(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)

	f0, err := n.AddFlight(mustMinute(t, clock.Monday, "09:00"), syd, mel, 100)
	require.NoError(t, err)
	f1, err := n.AddFlight(mustMinute(t, clock.Tuesday, "09:00"), syd, mel, 100)
	require.NoError(t, err)

	n.RemoveFlight(f0)
	require.Nil(t, n.FindFlight(0))
	require.Equal(t, []*network.Flight{f1}, syd.Departures())
	require.Equal(t, []*network.Flight{f1}, mel.Arrivals())

	n.RemoveFlight(f0) // double removal is a no-op
	require.Equal(t, []*network.Flight{f1}, syd.Departures())

	// IDs keep climbing after removals.
	f2, err := n.AddFlight(mustMinute(t, clock.Friday, "09:00"), syd, mel, 100)
	require.NoError(t, err)
	require.Equal(t, 2, f2.ID)
}

func TestFlightsByDepartureOrdering(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)
	bri := mustLocation(t, n, "Brisbane", -27.4698, 153.0251, 0.1)

	late, err := n.AddFlight(mustMinute(t, clock.Friday, "10:00"), syd, mel, 10)
	require.NoError(t, err)
	early, err := n.AddFlight(mustMinute(t, clock.Monday, "10:00"), mel, bri, 10)
	require.NoError(t, err)
	// Same departure time as early, but "Brisbane" < "Melbourne".
	tie, err := n.AddFlight(mustMinute(t, clock.Monday, "10:00"), bri, syd, 10)
	require.NoError(t, err)

	require.Equal(t, []*network.Flight{tie, early, late}, n.FlightsByDeparture())
}

func TestLocationEvents(t *testing.T) {
	n := network.New()
	syd := mustLocation(t, n, "Sydney", -33.8688, 151.2093, 0.2)
	mel := mustLocation(t, n, "Melbourne", -37.8136, 144.9631, -0.1)

	out, err := n.AddFlight(mustMinute(t, clock.Tuesday, "09:00"), syd, mel, 100)
	require.NoError(t, err)
	in, err := n.AddFlight(mustMinute(t, clock.Monday, "08:00"), mel, syd, 100)
	require.NoError(t, err)

	departures := syd.DepartureEvents()
	require.Len(t, departures, 1)
	require.Equal(t, out.ID, departures[0].FlightID)
	require.Equal(t, network.Departure, departures[0].Kind)
	require.Equal(t, "Melbourne", departures[0].Other)

	schedule := syd.ScheduleEvents()
	require.Len(t, schedule, 2)
	// Monday arrival sorts before Tuesday departure.
	require.Equal(t, in.ID, schedule[0].FlightID)
	require.Equal(t, network.Arrival, schedule[0].Kind)
	require.Equal(t, out.ID, schedule[1].FlightID)
}
