package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/metrics"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

// Metrics register on the default Prometheus registerer, so one
// registry is shared across all tests in the binary.
var testRegistry = metrics.NewRegistry()

func init() {
	logging.Nop()
}

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	return InitDependencies(network.New(), testRegistry)
}

func newTestRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/flights", ListFlightsHandler(deps))
	r.Post("/flights", AddFlightHandler(deps))
	r.Get("/flights/export", ExportFlightsHandler(deps))
	r.Get("/flights/{id}", GetFlightHandler(deps))
	r.Delete("/flights/{id}", RemoveFlightHandler(deps))
	r.Post("/flights/{id}/book", BookFlightHandler(deps))
	r.Post("/flights/{id}/reset", ResetFlightHandler(deps))
	r.Post("/locations", AddLocationHandler(deps))
	r.Get("/locations/{name}", GetLocationHandler(deps))
	r.Get("/travel", TravelHandler(deps))
	return r
}

func seedLocation(t *testing.T, deps *Deps, name string, lat, lon, coefficient float64) {
	t.Helper()
	loc, err := network.NewLocation(name, lat, lon, coefficient)
	if err != nil {
		t.Fatalf("NewLocation(%s): %v", name, err)
	}
	deps.write(func() {
		err = deps.Net.AddLocation(loc)
	})
	if err != nil {
		t.Fatalf("AddLocation(%s): %v", name, err)
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope[T any](t *testing.T, rr *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()
	var resp APIResponse[T]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestAddFlightHandler_Success(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	router := newTestRouter(deps)

	rr := postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:00",
		Source: "Sydney", Destination: "Melbourne", Capacity: 100,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeEnvelope[FlightDTO](t, rr)
	if resp.Status != "success" {
		t.Errorf("Expected status success, got %s", resp.Status)
	}
	if resp.Data == nil {
		t.Fatal("Expected flight data in response")
	}
	if resp.Data.ID != 0 {
		t.Errorf("Expected flight id 0, got %d", resp.Data.ID)
	}
	if resp.Data.Departure != "Monday 09:00" {
		t.Errorf("Expected departure Monday 09:00, got %s", resp.Data.Departure)
	}
	if resp.Data.Arrival != "Monday 09:59" {
		t.Errorf("Expected arrival Monday 09:59, got %s", resp.Data.Arrival)
	}
}

func TestAddFlightHandler_Conflict(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	seedLocation(t, deps, "Brisbane", -27.4698, 153.0251, 0.1)
	router := newTestRouter(deps)

	rr := postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:00",
		Source: "Sydney", Destination: "Melbourne", Capacity: 100,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}

	rr = postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:30",
		Source: "Sydney", Destination: "Brisbane", Capacity: 100,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", rr.Code)
	}
	resp := decodeEnvelope[FlightDTO](t, rr)
	if resp.Status != "error" {
		t.Errorf("Expected status error, got %s", resp.Status)
	}
	if !strings.Contains(resp.Error, "clashes with Flight 0") {
		t.Errorf("Expected conflict details, got %q", resp.Error)
	}

	// The rejected flight never entered the schedule.
	if rr := get(router, "/flights/1"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for rejected flight, got %d", rr.Code)
	}
}

func TestAddFlightHandler_BadRequests(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	router := newTestRouter(deps)

	cases := []struct {
		name string
		req  AddFlightRequest
		want int
	}{
		{"bad weekday", AddFlightRequest{Weekday: "Noday", Time: "09:00", Source: "Sydney", Destination: "Melbourne", Capacity: 10}, http.StatusBadRequest},
		{"bad time", AddFlightRequest{Weekday: "Monday", Time: "25:99", Source: "Sydney", Destination: "Melbourne", Capacity: 10}, http.StatusBadRequest},
		{"zero capacity", AddFlightRequest{Weekday: "Monday", Time: "09:00", Source: "Sydney", Destination: "Melbourne", Capacity: 0}, http.StatusBadRequest},
		{"same place", AddFlightRequest{Weekday: "Monday", Time: "09:00", Source: "Sydney", Destination: "Sydney", Capacity: 10}, http.StatusBadRequest},
		{"unknown source", AddFlightRequest{Weekday: "Monday", Time: "09:00", Source: "Atlantis", Destination: "Melbourne", Capacity: 10}, http.StatusNotFound},
	}
	for _, tc := range cases {
		if rr := postJSON(t, router, "/flights", tc.req); rr.Code != tc.want {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.want, rr.Code)
		}
	}

	req := httptest.NewRequest("POST", "/flights", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid json: expected status 400, got %d", rr.Code)
	}
}

func TestBookFlightHandler(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	router := newTestRouter(deps)
	postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:00",
		Source: "Sydney", Destination: "Melbourne", Capacity: 50,
	})

	rr := postJSON(t, router, "/flights/0/book?count=49", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	resp := decodeEnvelope[BookingDTO](t, rr)
	if resp.Data.Booked != 49 || resp.Data.Full {
		t.Errorf("Expected 49 booked and not full, got %+v", resp.Data)
	}

	// Overbooking clips at the remaining capacity.
	rr = postJSON(t, router, "/flights/0/book?count=5", nil)
	resp = decodeEnvelope[BookingDTO](t, rr)
	if resp.Data.Booked != 1 || !resp.Data.Full {
		t.Errorf("Expected 1 booked and full, got %+v", resp.Data)
	}

	if rr := postJSON(t, router, "/flights/0/book?count=abc", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad count, got %d", rr.Code)
	}
	if rr := postJSON(t, router, "/flights/99/book", nil); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown flight, got %d", rr.Code)
	}

	rr = postJSON(t, router, "/flights/0/reset", nil)
	flight := decodeEnvelope[FlightDTO](t, rr)
	if flight.Data.Booked != 0 || flight.Data.Full {
		t.Errorf("Expected reset flight, got %+v", flight.Data)
	}
}

func TestRemoveFlightHandler(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	router := newTestRouter(deps)
	postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:00",
		Source: "Sydney", Destination: "Melbourne", Capacity: 50,
	})

	req := httptest.NewRequest("DELETE", "/flights/0", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if rr := get(router, "/flights/0"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after removal, got %d", rr.Code)
	}
}

func TestTravelHandler(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Singapore", 1.3521, 103.8198, 0.6)
	seedLocation(t, deps, "London", 51.5074, -0.1278, 0.8)
	router := newTestRouter(deps)
	postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "08:00",
		Source: "Sydney", Destination: "Singapore", Capacity: 200,
	})
	postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Tuesday", Time: "10:00",
		Source: "Singapore", Destination: "London", Capacity: 200,
	})

	rr := get(router, "/travel?from=Sydney&to=London")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeEnvelope[PathDTO](t, rr)
	if len(resp.Data.Legs) != 2 {
		t.Fatalf("Expected 2 legs, got %d", len(resp.Data.Legs))
	}
	if resp.Data.Stopovers != 0 {
		t.Errorf("Expected 0 stopovers, got %d", resp.Data.Stopovers)
	}
	if len(resp.Data.LayoverMinutes) != 1 {
		t.Errorf("Expected one layover, got %v", resp.Data.LayoverMinutes)
	}

	// Second identical query is served from the cache.
	rr = get(router, "/travel?from=Sydney&to=London")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on cached query, got %d", rr.Code)
	}
	cached := decodeEnvelope[PathDTO](t, rr)
	if len(cached.Data.Legs) != 2 {
		t.Errorf("Expected cached result with 2 legs, got %d", len(cached.Data.Legs))
	}

	if rr := get(router, "/travel?from=London&to=Sydney"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unreachable route, got %d", rr.Code)
	}
	if rr := get(router, "/travel?from=Sydney&to=Atlantis"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown location, got %d", rr.Code)
	}
	if rr := get(router, "/travel?from=Sydney"); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing to, got %d", rr.Code)
	}
	if rr := get(router, "/travel?from=Sydney&to=London&by=comfort"); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad criterion, got %d", rr.Code)
	}
	if rr := get(router, "/travel?from=Sydney&to=London&by=stopovers"); rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 for criterion query, got %d", rr.Code)
	}
}

func TestTravelCacheFlushedOnMutation(t *testing.T) {
	deps := newTestDeps(t)
	seedLocation(t, deps, "Sydney", -33.8688, 151.2093, 0.2)
	seedLocation(t, deps, "Melbourne", -37.8136, 144.9631, -0.5)
	router := newTestRouter(deps)
	postJSON(t, router, "/flights", AddFlightRequest{
		Weekday: "Monday", Time: "09:00",
		Source: "Sydney", Destination: "Melbourne", Capacity: 50,
	})

	rr := get(router, "/travel?from=Sydney&to=Melbourne")
	before := decodeEnvelope[PathDTO](t, rr)

	// Booking shifts the load factor, so the cached price is stale.
	postJSON(t, router, "/flights/0/book?count=40", nil)

	rr = get(router, "/travel?from=Sydney&to=Melbourne")
	after := decodeEnvelope[PathDTO](t, rr)
	if after.Data.TotalCost <= before.Data.TotalCost {
		t.Errorf("Expected price to rise after booking, got %.2f then %.2f",
			before.Data.TotalCost, after.Data.TotalCost)
	}
}

func TestLocationHandlers(t *testing.T) {
	deps := newTestDeps(t)
	router := newTestRouter(deps)

	rr := postJSON(t, router, "/locations", AddLocationRequest{
		Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093, Coefficient: 0.2,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = postJSON(t, router, "/locations", AddLocationRequest{
		Name: "sydney", Latitude: 0, Longitude: 0, Coefficient: 0,
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate, got %d", rr.Code)
	}

	rr = postJSON(t, router, "/locations", AddLocationRequest{
		Name: "Nowhere", Latitude: 99, Longitude: 0, Coefficient: 0,
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad latitude, got %d", rr.Code)
	}

	rr = get(router, "/locations/Sydney")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	resp := decodeEnvelope[LocationDTO](t, rr)
	if resp.Data.Name != "Sydney" || resp.Data.Coefficient != 0.2 {
		t.Errorf("Unexpected location data: %+v", resp.Data)
	}

	if rr := get(router, "/locations/Atlantis"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}
