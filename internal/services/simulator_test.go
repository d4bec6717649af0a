package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopet/internal/models"
	"gopet/internal/observability"
	"gopet/internal/utils"
)

func newSimulator(t *testing.T, interval time.Duration) (*DataStore, *LifecycleSimulator) {
	t.Helper()

	store := NewDataStore(newSeededDrivers(), Dependencies{})
	sim := NewLifecycleSimulator(store, interval, Dependencies{})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sim.Shutdown(ctx)
	})
	return store, sim
}

func rideStatus(t *testing.T, store *DataStore, id string) models.RideStatus {
	ride, err := store.GetRide(context.Background(), id)
	require.NoError(t, err)
	return ride.Status
}

func TestSimulatorWalksNewRideToCompletion(t *testing.T) {
	ctx := context.Background()
	store, sim := newSimulator(t, 5*time.Millisecond)

	ride, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)

	_, err = sim.Start(ctx, ride.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return rideStatus(t, store, ride.ID) == models.RideStatusCompleted
	}, 2*time.Second, 5*time.Millisecond)

	final, err := store.GetRide(ctx, ride.ID)
	require.NoError(t, err)

	statuses := make([]models.RideStatus, len(final.Timeline))
	for i, event := range final.Timeline {
		statuses[i] = event.Status
		if event.Status == models.RideStatusPetOnboard {
			assert.Equal(t, "Foto do pet enviada automaticamente.", event.Description)
		}
	}
	assert.Equal(t, []models.RideStatus{
		models.RideStatusRequested,
		models.RideStatusDispatching,
		models.RideStatusDriverAccepted,
		models.RideStatusEnRoutePickup,
		models.RideStatusPetOnboard,
		models.RideStatusEnRouteDropoff,
		models.RideStatusCompleted,
	}, statuses)

	assert.Eventually(t, func() bool { return !sim.Running(ride.ID) }, time.Second, 5*time.Millisecond)
}

func TestSimulatorSkipsStepsAlreadyPassed(t *testing.T) {
	ctx := context.Background()
	store, sim := newSimulator(t, 5*time.Millisecond)

	// ride_1 is seeded at EN_ROUTE_PICKUP with three timeline events.
	_, err := sim.Start(ctx, "ride_1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return rideStatus(t, store, "ride_1") == models.RideStatusCompleted
	}, 2*time.Second, 5*time.Millisecond)

	ride, err := store.GetRide(ctx, "ride_1")
	require.NoError(t, err)
	require.Len(t, ride.Timeline, 6)
	assert.Equal(t, models.RideStatusPetOnboard, ride.Timeline[3].Status)
}

func TestSimulatorStartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	sim := NewLifecycleSimulator(store, time.Hour, Dependencies{Metrics: metrics})
	defer sim.Shutdown(ctx)

	_, err := sim.Start(ctx, "ride_2")
	require.NoError(t, err)
	_, err = sim.Start(ctx, "ride_2")
	require.NoError(t, err)

	assert.True(t, sim.Running("ride_2"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SimulationsStartedTotal))
}

func TestSimulatorRejectsUnknownAndTerminalRides(t *testing.T) {
	ctx := context.Background()
	store, sim := newSimulator(t, time.Hour)

	_, err := sim.Start(ctx, "ride_404")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = store.UpdateRideStatus(ctx, "ride_2", models.RideStatusCancelledSystem, "")
	require.NoError(t, err)

	_, err = sim.Start(ctx, "ride_2")
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))
	assert.False(t, sim.Running("ride_2"))
}

func TestSimulatorStopsWhenRideIsCancelled(t *testing.T) {
	ctx := context.Background()
	store, sim := newSimulator(t, time.Hour)

	_, err := sim.Start(ctx, "ride_1")
	require.NoError(t, err)
	require.True(t, sim.Running("ride_1"))

	_, err = store.UpdateRideStatus(ctx, "ride_1", models.RideStatusCancelledTutor, "Tutor desistiu")
	require.NoError(t, err)

	assert.False(t, sim.Running("ride_1"))
}

func TestSimulatorShutdownStopsRuns(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})
	sim := NewLifecycleSimulator(store, time.Hour, Dependencies{})

	_, err := sim.Start(ctx, "ride_1")
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, sim.Shutdown(shutdownCtx))

	assert.False(t, sim.Running("ride_1"))
	assert.Equal(t, models.RideStatusEnRoutePickup, rideStatus(t, store, "ride_1"))

	_, err = sim.Start(ctx, "ride_2")
	assert.True(t, errors.Is(err, ErrSimulatorStopped))
}
