package interfaces

import (
	"context"

	"gopet/internal/models"
)

// DriverRepository is the driver store contract. Both backends implement it
// with identical semantics; one is picked at startup.
type DriverRepository interface {
	// Create registers a new application: PENDING, OFFLINE, one history entry.
	Create(ctx context.Context, input *models.DriverInput) (*models.Driver, error)

	// FindAll returns every driver, newest-created first.
	FindAll(ctx context.Context) ([]*models.Driver, error)

	// FindByID returns utils.ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*models.Driver, error)

	// UpdateStatus appends exactly one history entry and replaces the
	// application status. A nil notes keeps the current notes.
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Driver, error)

	// UpdateOperationalStatus flips ONLINE / OFFLINE / ON_TRIP without
	// touching the application history.
	UpdateOperationalStatus(ctx context.Context, id string, status models.OperationalStatus) (*models.Driver, error)
}
