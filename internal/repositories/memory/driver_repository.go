package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gopet/internal/models"
	"gopet/internal/utils"
)

type DriverRepository struct {
	mu      sync.RWMutex
	drivers []*models.Driver
	now     func() time.Time
}

// NewDriverRepository starts from the given drivers (usually seed.Drivers).
func NewDriverRepository(initial []*models.Driver) *DriverRepository {
	drivers := make([]*models.Driver, 0, len(initial))
	for _, driver := range initial {
		drivers = append(drivers, driver.Clone())
	}
	sortNewestFirst(drivers)

	return &DriverRepository{
		drivers: drivers,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *DriverRepository) Create(ctx context.Context, input *models.DriverInput) (*models.Driver, error) {
	driver, err := models.NewDriver(input, utils.NewID(utils.DriverIDPrefix), r.now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.drivers {
		if existing.Email == driver.Email {
			return nil, utils.ValidationError("email", "a driver with this email already exists")
		}
	}
	r.drivers = append([]*models.Driver{driver}, r.drivers...)

	return driver.Clone(), nil
}

func (r *DriverRepository) FindAll(ctx context.Context) ([]*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*models.Driver, 0, len(r.drivers))
	for _, driver := range r.drivers {
		drivers = append(drivers, driver.Clone())
	}
	return drivers, nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver := r.find(id)
	if driver == nil {
		return nil, utils.NotFoundError("driver", id)
	}
	return driver.Clone(), nil
}

func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver := r.find(id)
	if driver == nil {
		return nil, utils.NotFoundError("driver", id)
	}

	driver.ApplyStatus(status, notes, r.now())
	return driver.Clone(), nil
}

func (r *DriverRepository) UpdateOperationalStatus(ctx context.Context, id string, status models.OperationalStatus) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver := r.find(id)
	if driver == nil {
		return nil, utils.NotFoundError("driver", id)
	}

	driver.Status = status
	driver.UpdatedAt = r.now()
	return driver.Clone(), nil
}

// find expects the caller to hold the lock.
func (r *DriverRepository) find(id string) *models.Driver {
	for _, driver := range r.drivers {
		if driver.ID == id {
			return driver
		}
	}
	return nil
}

func sortNewestFirst(drivers []*models.Driver) {
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].CreatedAt.After(drivers[j].CreatedAt)
	})
}
