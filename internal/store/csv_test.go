package store_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reneeli0223/Flight-Scheduler/internal/clock"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/store"
)

func seedLocations(t *testing.T, n *network.Network) {
	t.Helper()
	for _, args := range []struct {
		name     string
		lat, lon float64
		coeff    float64
	}{
		{"Sydney", -33.8688, 151.2093, 0.2},
		{"Melbourne", -37.8136, 144.9631, -0.5},
	} {
		loc, err := network.NewLocation(args.name, args.lat, args.lon, args.coeff)
		require.NoError(t, err)
		require.NoError(t, n.AddLocation(loc))
	}
}

func TestImportLocations(t *testing.T) {
	n := network.New()
	input := strings.Join([]string{
		"Sydney,-33.8688,151.2093,0.2",
		"not,enough",
		"Nowhere,91.5,10,0",
		"Sydney,-33.8688,151.2093,0.2",
		"Melbourne,-37.8136,144.9631,-0.5",
		"Broken,abc,144,0",
	}, "\n")

	sum, err := store.ImportLocations(n, strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, store.Summary{Imported: 2, Invalid: 4}, sum)
	require.NotNil(t, n.FindLocation("Sydney"))
	require.NotNil(t, n.FindLocation("Melbourne"))
	require.Len(t, n.Locations(), 2)
}

func TestImportFlights(t *testing.T) {
	n := network.New()
	seedLocations(t, n)
	input := strings.Join([]string{
		"Monday 09:00,Sydney,Melbourne,100,30",
		"Monday 09:05,Sydney,Melbourne,100,0", // inside the window, but import trusts its input
		"Tuesday 18:30,Melbourne,Sydney,50,50",
		"Noday 09:00,Sydney,Melbourne,100,0",
		"Monday 09:00,Sydney,Atlantis,100,0",
		"Monday 09:00,Sydney,Melbourne,ten,0",
		"garbage",
	}, "\n")

	sum, err := store.ImportFlights(n, strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, store.Summary{Imported: 3, Invalid: 4}, sum)

	flights := n.Flights()
	require.Len(t, flights, 3)
	require.Equal(t, 30, flights[0].Booked)
	require.True(t, flights[2].Full())

	want, err := clock.ParseDayTime(clock.Tuesday, "18:30")
	require.NoError(t, err)
	require.Equal(t, want, flights[2].DepartureTime)
}

func TestFormatLocation(t *testing.T) {
	cases := []struct {
		lat, lon float64
		coeff    float64
		want     string
	}{
		{-33.8688, 151.2093, 0.2, "X,-33.8688,151.2093,0.2"},
		{0, 0, 0, "X,0.0,0.0,0.0"},
		{10.5, -0.127839, 1, "X,10.5,-0.127839,1.0"},
		{45.1234567, 20, -0.25, "X,45.123457,20,-0.2"},
	}
	for _, c := range cases {
		loc, err := network.NewLocation("X", c.lat, c.lon, c.coeff)
		require.NoError(t, err)
		require.Equal(t, c.want, store.FormatLocation(loc))
	}
}

func TestExportRoundTrip(t *testing.T) {
	n := network.New()
	seedLocations(t, n)
	syd, mel := n.FindLocation("Sydney"), n.FindLocation("Melbourne")
	departure, err := clock.ParseDayTime(clock.Monday, "09:00")
	require.NoError(t, err)
	f, err := n.AddFlight(departure, syd, mel, 120)
	require.NoError(t, err)
	f.Book(25)

	var locOut, fltOut bytes.Buffer
	count, err := store.ExportLocations(n, &locOut)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	// Sorted by name: Melbourne first.
	require.Equal(t,
		"Melbourne,-37.8136,144.9631,-0.5\nSydney,-33.8688,151.2093,0.2\n",
		locOut.String())

	count, err = store.ExportFlights(n, &fltOut)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, "Monday 09:00,Sydney,Melbourne,120,25\n", fltOut.String())

	restored := network.New()
	sum, err := store.ImportLocations(restored, bytes.NewReader(locOut.Bytes()))
	require.NoError(t, err)
	require.Equal(t, store.Summary{Imported: 2}, sum)
	sum, err = store.ImportFlights(restored, bytes.NewReader(fltOut.Bytes()))
	require.NoError(t, err)
	require.Equal(t, store.Summary{Imported: 1}, sum)

	got := restored.FindFlight(0)
	require.NotNil(t, got)
	require.Equal(t, f.DepartureTime, got.DepartureTime)
	require.Equal(t, f.Capacity, got.Capacity)
	require.Equal(t, f.Booked, got.Booked)
	require.Equal(t, "Sydney", got.Source.Name)
}
