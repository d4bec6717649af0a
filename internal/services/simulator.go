package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gopet/internal/models"
	"gopet/internal/observability"
	"gopet/internal/utils"
	"gopet/pkg/logger"
)

// DefaultStepInterval is the pause between two simulated lifecycle steps.
const DefaultStepInterval = 2500 * time.Millisecond

type simulationStep struct {
	status      models.RideStatus
	description string
}

var simulationSteps = []simulationStep{
	{status: models.RideStatusDispatching},
	{status: models.RideStatusDriverAccepted},
	{status: models.RideStatusEnRoutePickup},
	{status: models.RideStatusPetOnboard, description: "Foto do pet enviada automaticamente."},
	{status: models.RideStatusEnRouteDropoff},
	{status: models.RideStatusCompleted},
}

var ErrSimulatorStopped = errors.New("lifecycle simulator stopped")

type simulation struct {
	cancel context.CancelFunc
}

// LifecycleSimulator walks rides through their lifecycle in the background,
// one step per interval. Steps the ride has already passed are skipped, and
// a run ends as soon as its ride reaches a terminal state by any path.
type LifecycleSimulator struct {
	store    *DataStore
	interval time.Duration
	metrics  *observability.Metrics
	logger   *logger.Logger

	mu     sync.Mutex
	runs   map[string]*simulation
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifecycleSimulator registers the simulator as a ride observer on store.
func NewLifecycleSimulator(store *DataStore, interval time.Duration, deps Dependencies) *LifecycleSimulator {
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &LifecycleSimulator{
		store:    store,
		interval: interval,
		metrics:  deps.Metrics,
		logger:   deps.logger().WithField("component", "lifecycle_simulator"),
		runs:     make(map[string]*simulation),
		ctx:      ctx,
		cancel:   cancel,
	}
	store.AddNotifier(s)
	return s
}

// Start begins simulating rideID. Starting a ride that is already being
// simulated returns the current ride without starting a second run.
func (s *LifecycleSimulator) Start(ctx context.Context, rideID string) (*models.Ride, error) {
	ride, err := s.store.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status.IsTerminal() {
		return nil, utils.TransitionError(string(ride.Status), "simulation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return nil, ErrSimulatorStopped
	}
	if _, running := s.runs[rideID]; running {
		return ride, nil
	}

	runCtx, cancel := context.WithCancel(s.ctx)
	run := &simulation{cancel: cancel}
	s.runs[rideID] = run
	s.wg.Add(1)
	go s.run(runCtx, rideID, run)

	s.metrics.SimulationStarted()
	s.logger.WithRideID(rideID).Info("Lifecycle simulation started")
	return ride, nil
}

// Running reports whether rideID has an active simulation.
func (s *LifecycleSimulator) Running(rideID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runs[rideID]
	return ok
}

// RideUpdated stops the run of a ride that reached a terminal state.
func (s *LifecycleSimulator) RideUpdated(ride *models.Ride) {
	if !ride.Status.IsTerminal() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if run, ok := s.runs[ride.ID]; ok {
		run.cancel()
		delete(s.runs, ride.ID)
	}
}

func (s *LifecycleSimulator) MessagePosted(*models.ChatMessage) {}

// Shutdown cancels every run and waits for them to exit or for ctx to end.
func (s *LifecycleSimulator) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *LifecycleSimulator) run(ctx context.Context, rideID string, run *simulation) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if s.runs[rideID] == run {
			delete(s.runs, rideID)
		}
		s.mu.Unlock()
		run.cancel()
	}()

	ctx = logger.ContextWithRideID(ctx, rideID)
	log := s.logger.WithContext(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for _, step := range simulationSteps {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		ride, err := s.store.GetRide(ctx, rideID)
		if err != nil {
			log.WithError(err).Warn("Simulated ride disappeared")
			return
		}
		if ride.Status.IsTerminal() {
			return
		}
		if !ride.Status.CanTransitionTo(step.status) {
			continue
		}

		_, err = s.store.UpdateRideStatus(ctx, rideID, step.status, step.description)
		switch {
		case err == nil:
		case errors.Is(err, utils.ErrInvalidTransition):
			// Another writer moved the ride between the read and the write.
			continue
		default:
			log.WithError(err).Error("Simulated status update failed")
			return
		}
	}

	log.Info("Lifecycle simulation finished")
}
