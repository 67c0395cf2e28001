// Package metrics holds the box office collectors and their scrape endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the box office collectors. Table refetch and Go runtime
// metrics stay on the default registry.
var Registry = prometheus.NewRegistry()

// Gatherer merges Registry with the default registry.
var Gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, Registry}

var (
	backendRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "boxoffice",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Backend API calls by method and status code.",
	}, []string{"code", "method"})

	backendDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "boxoffice",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Backend API latency.",
		Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method"})

	backendInFlight = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "boxoffice",
		Subsystem: "backend",
		Name:      "in_flight_requests",
		Help:      "Backend API calls currently waiting for a response.",
	})

	// OpsDenied counts health and metrics requests hidden by the ops guard.
	OpsDenied = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: "boxoffice",
		Name:      "ops_requests_denied_total",
		Help:      "Ops routes answered with 404 for untrusted callers.",
	})

	// ActiveSessions is set by the session store sweeper.
	ActiveSessions = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "boxoffice",
		Name:      "active_sessions",
		Help:      "Browser sessions holding a backend client.",
	})
)

// InstrumentBackend wraps the transport used to reach the backend API.
// A nil next wraps http.DefaultTransport.
func InstrumentBackend(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(backendInFlight,
		promhttp.InstrumentRoundTripperCounter(backendRequests,
			promhttp.InstrumentRoundTripperDuration(backendDuration, next),
		),
	)
}
