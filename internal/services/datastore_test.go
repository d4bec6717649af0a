package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopet/internal/models"
	"gopet/internal/observability"
	"gopet/internal/repositories/memory"
	"gopet/internal/utils"
)

func TestCreateRideAssignsFirstOnlineDriver(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	ride, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ride.ID, utils.RideIDPrefix))
	assert.Equal(t, models.RideStatusRequested, ride.Status)
	assert.Equal(t, "Thor", ride.Pet.Name)
	require.NotNil(t, ride.Driver)
	assert.Equal(t, "drv_1", ride.Driver.ID)
	assert.Equal(t, 5.7, ride.EstimatedDistanceKm)
	assert.Equal(t, 16, ride.EstimatedDurationMin)
	assert.Equal(t, 58.9, ride.Price)
	assert.Equal(t, "2024-05-01T10:00:00Z", ride.ScheduledAt)

	require.Len(t, ride.Timeline, 1)
	assert.Equal(t, models.RideStatusRequested, ride.Timeline[0].Status)
	assert.Equal(t, "Solicitação registrada", ride.Timeline[0].Title)

	rides := store.ListRides(ctx)
	assert.Equal(t, ride.ID, rides[0].ID, "new rides are prepended")
}

func TestCreateRideWithoutOnlineDriver(t *testing.T) {
	ctx := context.Background()
	drivers := memory.NewDriverRepository(nil)
	store := NewDataStore(drivers, Dependencies{})

	ride, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)
	assert.Nil(t, ride.Driver)
}

func TestCreateRideUnknownPet(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})
	before := len(store.ListRides(ctx))

	input := rideInput()
	input.PetID = "pet_404"
	_, err := store.CreateRide(ctx, input)

	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.Len(t, store.ListRides(ctx), before)
}

func TestRideDriverIsASnapshot(t *testing.T) {
	ctx := context.Background()
	drivers := newSeededDrivers()
	store := NewDataStore(drivers, Dependencies{})

	ride, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)

	_, err = drivers.UpdateStatus(ctx, "drv_1", models.ApplicationStatusSuspended, nil)
	require.NoError(t, err)

	stored, err := store.GetRide(ctx, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Driver.ApplicationStatus)
}

func TestUpdateRideStatusEnforcesLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	// ride_1 is seeded at EN_ROUTE_PICKUP.
	_, err := store.UpdateRideStatus(ctx, "ride_1", models.RideStatusDriverAccepted, "")
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))

	_, err = store.UpdateRideStatus(ctx, "ride_1", models.RideStatusEnRoutePickup, "")
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))

	ride, err := store.UpdateRideStatus(ctx, "ride_1", models.RideStatusPetOnboard, "Foto enviada")
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusPetOnboard, ride.Status)
	last := ride.Timeline[len(ride.Timeline)-1]
	assert.Equal(t, "Status atualizado para PET_ONBOARD", last.Title)
	assert.Equal(t, "Foto enviada", last.Description)
	assert.Equal(t, last.Timestamp, ride.LastUpdate)

	ride, err = store.UpdateRideStatus(ctx, "ride_1", models.RideStatusCancelledDriver, "")
	require.NoError(t, err)
	assert.True(t, ride.Status.IsTerminal())

	_, err = store.UpdateRideStatus(ctx, "ride_1", models.RideStatusCompleted, "")
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))

	_, err = store.UpdateRideStatus(ctx, "ride_404", models.RideStatusCompleted, "")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = store.UpdateRideStatus(ctx, "ride_2", models.RideStatus("FLYING"), "")
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestTimelineNeverRegresses(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	ride, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)

	attempts := []models.RideStatus{
		models.RideStatusDriverAccepted,
		models.RideStatusDispatching,
		models.RideStatusPetOnboard,
		models.RideStatusArrivedPickup,
		models.RideStatusPetOnboard,
		models.RideStatusCompleted,
		models.RideStatusCancelledTutor,
	}
	for _, status := range attempts {
		_, _ = store.UpdateRideStatus(ctx, ride.ID, status, "")
	}

	final, err := store.GetRide(ctx, ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, final.Status)

	previous := -1
	for _, event := range final.Timeline {
		index := event.Status.LifecycleIndex()
		assert.Greater(t, index, previous)
		previous = index
	}
}

func TestMessagesAreAppendedPerRide(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})
	rec := &recorder{}
	store.AddNotifier(rec)

	message, err := store.AddMessage(ctx, "ride_2", &models.MessageInput{
		SenderRole: models.SenderRoleSupport,
		Content:    "Tudo certo com o Thor?",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(message.ID, utils.MessageIDPrefix))

	messages, err := store.ListMessages(ctx, "ride_2")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, message.ID, messages[0].ID)

	seeded, err := store.ListMessages(ctx, "ride_1")
	require.NoError(t, err)
	assert.Len(t, seeded, 4)

	snapshot, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, message.ID, snapshot.Messages[len(snapshot.Messages)-1].ID)
	require.Len(t, rec.messages, 1)

	before := len(snapshot.Messages)
	_, err = store.AddMessage(ctx, "ride_404", &models.MessageInput{SenderRole: models.SenderRoleTutor, Content: "Oi"})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	_, err = store.ListMessages(ctx, "ride_404")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	after, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Messages, before)
	assert.Len(t, rec.messages, 1)
}

func TestCreateIncident(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	incident, err := store.CreateIncident(ctx, &models.IncidentInput{
		RideID:      "ride_1",
		Title:       "Pet agitado",
		Description: "Tutor pediu pausa",
		Severity:    models.IncidentSeverityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusOpen, incident.Status)
	assert.Equal(t, incident.ID, store.ListIncidents(ctx)[0].ID)

	_, err = store.CreateIncident(ctx, &models.IncidentInput{
		RideID:      "ride_404",
		Title:       "Sem corrida",
		Description: "Corrida inexistente",
		Severity:    models.IncidentSeverityLow,
	})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	updated, err := store.UpdateIncidentStatus(ctx, incident.ID, models.IncidentStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusResolved, updated.Status)

	_, err = store.UpdateIncidentStatus(ctx, "inc_404", models.IncidentStatusResolved)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestUpdateTicketStatus(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	ticket, err := store.UpdateTicketStatus(ctx, "ticket_2", models.TicketStatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusDone, ticket.Status)
	assert.Equal(t, models.TicketStatusDone, store.ListTickets(ctx)[1].Status)

	_, err = store.UpdateTicketStatus(ctx, "ticket_404", models.TicketStatusDone)
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = store.UpdateTicketStatus(ctx, "ticket_1", models.TicketStatus("archived"))
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestSnapshotReflectsDriverStore(t *testing.T) {
	ctx := context.Background()
	drivers := newSeededDrivers()
	store := NewDataStore(drivers, Dependencies{})

	snapshot, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Pets, 3)
	assert.Len(t, snapshot.Drivers, 3)
	assert.Len(t, snapshot.Rides, 2)
	assert.Len(t, snapshot.Incidents, 2)
	assert.Len(t, snapshot.Tickets, 2)
	assert.Len(t, snapshot.Messages, 4)

	snapshot.Rides[0].Timeline = nil
	again, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, again.Rides[0].Timeline, "snapshots are copies")
}

func TestSnapshotCacheIsInvalidatedOnWrites(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	store := NewDataStore(newSeededDrivers(), Dependencies{Cache: c, Metrics: metrics})

	_, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, c.has(SnapshotCacheKey))

	cached, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Rides, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SnapshotCacheRequestsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SnapshotCacheRequestsTotal.WithLabelValues("miss")))

	_, err = store.CreateRide(ctx, rideInput())
	require.NoError(t, err)
	assert.False(t, c.has(SnapshotCacheKey))

	fresh, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Rides, 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RidesCreatedTotal))
}

// stallingCache holds the first Set until release is closed.
type stallingCache struct {
	*memoryCache
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newStallingCache() *stallingCache {
	return &stallingCache{
		memoryCache: newMemoryCache(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (c *stallingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	first := false
	c.once.Do(func() { first = true })
	if first {
		close(c.entered)
		<-c.release
	}
	return c.memoryCache.Set(ctx, key, value, ttl)
}

func TestSnapshotFillRacingARideWriteIsDiscarded(t *testing.T) {
	ctx := context.Background()
	c := newStallingCache()
	store := NewDataStore(newSeededDrivers(), Dependencies{Cache: c})

	done := make(chan *models.DashboardSnapshot)
	go func() {
		snapshot, err := store.GetSnapshot(ctx)
		assert.NoError(t, err)
		done <- snapshot
	}()

	<-c.entered
	_, err := store.CreateRide(ctx, rideInput())
	require.NoError(t, err)
	close(c.release)

	select {
	case stale := <-done:
		assert.Len(t, stale.Rides, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot read did not finish")
	}

	assert.False(t, c.has(SnapshotCacheKey))
	fresh, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Rides, 3)
}

func TestSnapshotFillRacingADriverWriteIsDiscarded(t *testing.T) {
	ctx := context.Background()
	c := newStallingCache()
	deps := Dependencies{Cache: c}
	drivers := newSeededDrivers()
	store := NewDataStore(drivers, deps)
	svc := NewDriverService(drivers, deps, store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := store.GetSnapshot(ctx)
		assert.NoError(t, err)
	}()

	<-c.entered
	_, err := svc.UpdateAvailability(ctx, "drv_2", models.OperationalStatusOffline)
	require.NoError(t, err)
	close(c.release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot read did not finish")
	}

	fresh, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	for _, driver := range fresh.Drivers {
		if driver.ID == "drv_2" {
			assert.Equal(t, models.OperationalStatusOffline, driver.Status)
		}
	}
}

func TestConcurrentRideWrites(t *testing.T) {
	ctx := context.Background()
	store := NewDataStore(newSeededDrivers(), Dependencies{})

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.CreateRide(ctx, rideInput())
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := store.AddMessage(ctx, "ride_1", &models.MessageInput{SenderRole: models.SenderRoleTutor, Content: "Oi"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, store.ListRides(ctx), writers+2)
	messages, err := store.ListMessages(ctx, "ride_1")
	require.NoError(t, err)
	assert.Len(t, messages, writers+4)
}
