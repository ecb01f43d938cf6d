package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the scheduler service.
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business metrics
	FlightsAddedTotal      prometheus.Counter
	ConflictsRejectedTotal prometheus.Counter
	SeatsBookedTotal       prometheus.Counter
	RouteSearchesTotal     prometheus.CounterVec
	RouteSearchDuration    prometheus.Histogram
}

// NewRegistry initializes and returns a Registry with all metrics
// registered on the default Prometheus registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scheduler_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scheduler_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		FlightsAddedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scheduler_flights_added_total",
				Help: "Total flights added to the network",
			},
		),
		ConflictsRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scheduler_conflicts_rejected_total",
				Help: "Total flights rejected by the 60-minute conflict check",
			},
		),
		SeatsBookedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "scheduler_seats_booked_total",
				Help: "Total seats booked across all flights",
			},
		),
		RouteSearchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_route_searches_total",
				Help: "Total travel searches by ranking criterion and cache outcome",
			},
			[]string{"criterion", "cache"},
		),
		RouteSearchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scheduler_route_search_duration_seconds",
				Help:    "Bounded path enumeration and ranking time in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
	}
}
