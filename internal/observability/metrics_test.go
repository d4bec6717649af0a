package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

func TestObserveHTTPRequest(t *testing.T) {
	m, reg := newTestMetrics(t)

	m.ObserveHTTPRequest("GET", "/api/rides/:id", 404, 15*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/rides/:id", 404, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/rides/:id", "404")))

	count, err := testutil.GatherAndCount(reg, "gopet_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDomainCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RideCreated()
	m.RideTransitioned("DISPATCHING")
	m.RideTransitioned("DISPATCHING")
	m.DriverApplicationUpdated("APPROVED")
	m.SimulationStarted()
	m.SnapshotCacheLookup("hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RidesCreatedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RideTransitionsTotal.WithLabelValues("DISPATCHING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DriverApplicationUpdates.WithLabelValues("APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationsStartedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotCacheRequestsTotal.WithLabelValues("hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
		m.RideCreated()
		m.RideTransitioned("COMPLETED")
		m.DriverApplicationUpdated("REJECTED")
		m.SimulationStarted()
		m.SnapshotCacheLookup("miss")
	})
}
