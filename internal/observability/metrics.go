// Package observability holds the Prometheus collectors exported at /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gopet"

// Metrics groups every collector the service records. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDuration        *prometheus.HistogramVec
	RidesCreatedTotal          prometheus.Counter
	RideTransitionsTotal       *prometheus.CounterVec
	DriverApplicationUpdates   *prometheus.CounterVec
	SimulationsStartedTotal    prometheus.Counter
	SnapshotCacheRequestsTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RidesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rides_created_total",
			Help:      "Rides created.",
		}),

		RideTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ride_transitions_total",
			Help:      "Accepted ride status transitions by target status.",
		}, []string{"status"}),

		DriverApplicationUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "driver_application_updates_total",
			Help:      "Driver application status changes by new status.",
		}, []string{"status"}),

		SimulationsStartedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_simulations_started_total",
			Help:      "Ride lifecycle simulations started.",
		}),

		SnapshotCacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_requests_total",
			Help:      "Dashboard snapshot cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RideCreated() {
	if m == nil {
		return
	}
	m.RidesCreatedTotal.Inc()
}

func (m *Metrics) RideTransitioned(status string) {
	if m == nil {
		return
	}
	m.RideTransitionsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) DriverApplicationUpdated(status string) {
	if m == nil {
		return
	}
	m.DriverApplicationUpdates.WithLabelValues(status).Inc()
}

func (m *Metrics) SimulationStarted() {
	if m == nil {
		return
	}
	m.SimulationsStartedTotal.Inc()
}

func (m *Metrics) SnapshotCacheLookup(result string) {
	if m == nil {
		return
	}
	m.SnapshotCacheRequestsTotal.WithLabelValues(result).Inc()
}
