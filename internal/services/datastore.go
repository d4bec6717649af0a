package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gopet/internal/models"
	"gopet/internal/observability"
	"gopet/internal/repositories/interfaces"
	"gopet/internal/seed"
	"gopet/internal/utils"
	"gopet/pkg/logger"
)

// Placeholder quote attached to every new ride until pricing exists.
const (
	quoteDistanceKm  = 5.7
	quoteDurationMin = 16
	quotePrice       = 58.9

	rideRequestedTitle       = "Solicitação registrada"
	rideRequestedDescription = "Quote gerado e pré-autorizado."
)

// DataStore owns pets, rides, incidents, tickets and chat messages in
// memory. Drivers come from the DriverRepository. One RWMutex serializes
// writers; every read returns copies.
type DataStore struct {
	mu        sync.RWMutex
	pets      []*models.Pet
	rides     []*models.Ride
	incidents []*models.Incident
	tickets   []*models.SupportTicket
	messages  []*models.ChatMessage

	drivers   interfaces.DriverRepository
	snapshots *snapshotCache
	metrics   *observability.Metrics
	logger    *logger.Logger
	now       func() time.Time

	notifyMu  sync.RWMutex
	notifiers []RideNotifier
}

// NewDataStore starts from the seed catalogue.
func NewDataStore(drivers interfaces.DriverRepository, deps Dependencies) *DataStore {
	now := time.Now()

	return &DataStore{
		pets:      seed.Pets(),
		rides:     seed.Rides(now),
		incidents: seed.Incidents(now),
		tickets:   seed.Tickets(now),
		messages:  seed.Messages(now),
		drivers:   drivers,
		snapshots: newSnapshotCache(deps),
		metrics:   deps.Metrics,
		logger:    deps.logger().WithField("component", "data_store"),
		now:       time.Now,
	}
}

func (s *DataStore) AddNotifier(notifier RideNotifier) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.notifiers = append(s.notifiers, notifier)
}

func (s *DataStore) ListPets(ctx context.Context) []*models.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePets(s.pets)
}

func (s *DataStore) ListRides(ctx context.Context) []*models.Ride {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRides(s.rides)
}

func (s *DataStore) GetRide(ctx context.Context, id string) (*models.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ride := s.findRide(id)
	if ride == nil {
		return nil, utils.NotFoundError("ride", id)
	}
	return ride.Clone(), nil
}

// CreateRide books a ride for a known pet. The first ONLINE driver, in the
// repository's newest-first order, is attached as a snapshot; no driver is
// attached when nobody is online.
func (s *DataStore) CreateRide(ctx context.Context, input *models.RideInput) (*models.Ride, error) {
	if input == nil {
		return nil, utils.ValidationError("ride", "payload is required")
	}
	if !input.Category.IsValid() {
		return nil, utils.ValidationError("category", fmt.Sprintf("unknown category %q", input.Category))
	}
	scheduledAt, err := utils.ParseTimeISO(input.ScheduledAt)
	if err != nil {
		return nil, utils.ValidationError("scheduledAt", "must be an ISO-8601 date")
	}

	pet := s.findPet(input.PetID)
	if pet == nil {
		return nil, utils.NotFoundError("pet", input.PetID)
	}

	drivers, err := s.drivers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find drivers: %w", err)
	}
	var driver *models.Driver
	for _, candidate := range drivers {
		if candidate.Status == models.OperationalStatusOnline {
			driver = candidate.Clone()
			break
		}
	}

	now := s.now()
	ride := &models.Ride{
		ID:                   utils.NewID(utils.RideIDPrefix),
		TutorName:            input.TutorName,
		Pet:                  *pet,
		Driver:               driver,
		Category:             input.Category,
		Status:               models.RideStatusRequested,
		PickupAddress:        input.PickupAddress,
		DestinationAddress:   input.DestinationAddress,
		ScheduledAt:          utils.FormatTimeISO(scheduledAt),
		EstimatedDistanceKm:  quoteDistanceKm,
		EstimatedDurationMin: quoteDurationMin,
		Price:                quotePrice,
		Notes:                input.Notes,
		LastUpdate:           now,
		Timeline: []models.RideEvent{
			{
				ID:          utils.NewID(utils.EventIDPrefix),
				Status:      models.RideStatusRequested,
				Title:       rideRequestedTitle,
				Description: rideRequestedDescription,
				Timestamp:   now,
			},
		},
	}

	s.mu.Lock()
	s.rides = append([]*models.Ride{ride}, s.rides...)
	created := ride.Clone()
	s.mu.Unlock()

	details := map[string]interface{}{"pet_id": pet.ID, "category": ride.Category}
	if driver != nil {
		details["driver_id"] = driver.ID
	}
	s.logger.WithContext(ctx).LogRideEvent(created.ID, "ride_requested", details)
	s.metrics.RideCreated()
	s.rideChanged(ctx, created)
	return created, nil
}

// UpdateRideStatus moves a ride along its lifecycle. Regressions, repeats
// and moves out of a terminal state fail with ErrInvalidTransition; any
// non-terminal ride may be cancelled.
func (s *DataStore) UpdateRideStatus(ctx context.Context, rideID string, status models.RideStatus, description string) (*models.Ride, error) {
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown ride status %q", status))
	}

	s.mu.Lock()
	ride := s.findRide(rideID)
	if ride == nil {
		s.mu.Unlock()
		return nil, utils.NotFoundError("ride", rideID)
	}
	if !ride.Status.CanTransitionTo(status) {
		from := ride.Status
		s.mu.Unlock()
		return nil, utils.TransitionError(string(from), string(status))
	}

	now := s.now()
	ride.Status = status
	ride.LastUpdate = now
	ride.Timeline = append(ride.Timeline, models.RideEvent{
		ID:          utils.NewID(utils.EventIDPrefix),
		Status:      status,
		Title:       fmt.Sprintf("Status atualizado para %s", status),
		Description: description,
		Timestamp:   now,
	})
	updated := ride.Clone()
	s.mu.Unlock()

	s.logger.WithContext(ctx).LogRideEvent(rideID, "status_changed", map[string]interface{}{
		"status": status,
	})
	s.metrics.RideTransitioned(string(status))
	s.rideChanged(ctx, updated)
	return updated, nil
}

// ListMessages returns the chat of one ride in posting order.
func (s *DataStore) ListMessages(ctx context.Context, rideID string) ([]*models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.findRide(rideID) == nil {
		return nil, utils.NotFoundError("ride", rideID)
	}

	messages := make([]*models.ChatMessage, 0)
	for _, message := range s.messages {
		if message.RideID == rideID {
			copied := *message
			messages = append(messages, &copied)
		}
	}
	return messages, nil
}

func (s *DataStore) AddMessage(ctx context.Context, rideID string, input *models.MessageInput) (*models.ChatMessage, error) {
	if input == nil {
		return nil, utils.ValidationError("message", "payload is required")
	}

	s.mu.Lock()
	if s.findRide(rideID) == nil {
		s.mu.Unlock()
		return nil, utils.NotFoundError("ride", rideID)
	}
	message := &models.ChatMessage{
		ID:         utils.NewID(utils.MessageIDPrefix),
		RideID:     rideID,
		SenderRole: input.SenderRole,
		Content:    input.Content,
		Timestamp:  s.now(),
	}
	s.messages = append(s.messages, message)
	posted := *message
	s.mu.Unlock()

	s.snapshots.invalidate(ctx)
	for _, notifier := range s.currentNotifiers() {
		copied := posted
		notifier.MessagePosted(&copied)
	}
	return &posted, nil
}

func (s *DataStore) ListIncidents(ctx context.Context) []*models.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIncidents(s.incidents)
}

// CreateIncident records an incident against an existing ride. The status
// defaults to open.
func (s *DataStore) CreateIncident(ctx context.Context, input *models.IncidentInput) (*models.Incident, error) {
	if input == nil {
		return nil, utils.ValidationError("incident", "payload is required")
	}
	status := input.Status
	if status == "" {
		status = models.IncidentStatusOpen
	}
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown incident status %q", status))
	}
	if !input.Severity.IsValid() {
		return nil, utils.ValidationError("severity", fmt.Sprintf("unknown severity %q", input.Severity))
	}

	s.mu.Lock()
	if s.findRide(input.RideID) == nil {
		s.mu.Unlock()
		return nil, utils.NotFoundError("ride", input.RideID)
	}
	incident := &models.Incident{
		ID:          utils.NewID(utils.IncidentIDPrefix),
		RideID:      input.RideID,
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		Status:      status,
		CreatedAt:   s.now(),
	}
	s.incidents = append([]*models.Incident{incident}, s.incidents...)
	created := *incident
	s.mu.Unlock()

	s.logger.WithContext(ctx).LogRideEvent(created.RideID, "incident_logged", map[string]interface{}{
		"incident_id": created.ID,
		"severity":    created.Severity,
	})
	s.snapshots.invalidate(ctx)
	return &created, nil
}

func (s *DataStore) UpdateIncidentStatus(ctx context.Context, id string, status models.IncidentStatus) (*models.Incident, error) {
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown incident status %q", status))
	}

	s.mu.Lock()
	var updated *models.Incident
	for _, incident := range s.incidents {
		if incident.ID == id {
			incident.Status = status
			copied := *incident
			updated = &copied
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, utils.NotFoundError("incident", id)
	}
	s.snapshots.invalidate(ctx)
	return updated, nil
}

func (s *DataStore) ListTickets(ctx context.Context) []*models.SupportTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]*models.SupportTicket, len(s.tickets))
	for i, ticket := range s.tickets {
		copied := *ticket
		tickets[i] = &copied
	}
	return tickets
}

func (s *DataStore) UpdateTicketStatus(ctx context.Context, id string, status models.TicketStatus) (*models.SupportTicket, error) {
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown ticket status %q", status))
	}

	s.mu.Lock()
	var updated *models.SupportTicket
	for _, ticket := range s.tickets {
		if ticket.ID == id {
			ticket.Status = status
			copied := *ticket
			updated = &copied
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, utils.NotFoundError("ticket", id)
	}
	s.snapshots.invalidate(ctx)
	return updated, nil
}

// GetSnapshot returns every collection at once. Drivers are read from the
// repository before the store lock is taken.
func (s *DataStore) GetSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var cached models.DashboardSnapshot
	if s.snapshots.load(ctx, &cached) {
		return &cached, nil
	}

	gen := s.snapshots.current()
	drivers, err := s.drivers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find drivers: %w", err)
	}

	s.mu.RLock()
	snapshot := &models.DashboardSnapshot{
		Pets:      clonePets(s.pets),
		Drivers:   drivers,
		Rides:     cloneRides(s.rides),
		Incidents: cloneIncidents(s.incidents),
		Tickets:   make([]*models.SupportTicket, len(s.tickets)),
		Messages:  make([]*models.ChatMessage, len(s.messages)),
	}
	for i, ticket := range s.tickets {
		copied := *ticket
		snapshot.Tickets[i] = &copied
	}
	for i, message := range s.messages {
		copied := *message
		snapshot.Messages[i] = &copied
	}
	s.mu.RUnlock()

	s.snapshots.store(ctx, snapshot, gen)
	return snapshot, nil
}

// DriverUpdated invalidates the cached snapshot after a driver change, so the
// store can be registered as a DriverService notifier.
func (s *DataStore) DriverUpdated(driver *models.Driver) {
	s.snapshots.invalidate(context.Background())
	s.logger.WithDriverID(driver.ID).Debug("Snapshot invalidated after driver change")
}

func (s *DataStore) rideChanged(ctx context.Context, ride *models.Ride) {
	s.snapshots.invalidate(ctx)
	for _, notifier := range s.currentNotifiers() {
		notifier.RideUpdated(ride.Clone())
	}
}

func (s *DataStore) currentNotifiers() []RideNotifier {
	s.notifyMu.RLock()
	defer s.notifyMu.RUnlock()
	return append([]RideNotifier(nil), s.notifiers...)
}

// findPet returns a copy; pets never change after startup.
func (s *DataStore) findPet(id string) *models.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, pet := range s.pets {
		if pet.ID == id {
			return pet.Clone()
		}
	}
	return nil
}

// findRide must be called with the lock held.
func (s *DataStore) findRide(id string) *models.Ride {
	for _, ride := range s.rides {
		if ride.ID == id {
			return ride
		}
	}
	return nil
}

func clonePets(pets []*models.Pet) []*models.Pet {
	out := make([]*models.Pet, len(pets))
	for i, pet := range pets {
		out[i] = pet.Clone()
	}
	return out
}

func cloneRides(rides []*models.Ride) []*models.Ride {
	out := make([]*models.Ride, len(rides))
	for i, ride := range rides {
		out[i] = ride.Clone()
	}
	return out
}

func cloneIncidents(incidents []*models.Incident) []*models.Incident {
	out := make([]*models.Incident, len(incidents))
	for i, incident := range incidents {
		copied := *incident
		out[i] = &copied
	}
	return out
}
