package services

import (
	"context"
	"fmt"

	"gopet/internal/models"
	"gopet/internal/observability"
	"gopet/internal/repositories/interfaces"
	"gopet/internal/utils"
	"gopet/pkg/logger"
)

// DriverService fronts the driver repository. It logs and audits every
// change and hands the updated driver to its notifiers; the DataStore is one
// of them and drops its cached snapshot.
type DriverService struct {
	repo      interfaces.DriverRepository
	notifiers []DriverNotifier
	metrics   *observability.Metrics
	logger    *logger.Logger
	audit     *logger.AuditLogger
}

func NewDriverService(repo interfaces.DriverRepository, deps Dependencies, notifiers ...DriverNotifier) *DriverService {
	log := deps.logger().WithField("component", "driver_service")

	return &DriverService{
		repo:      repo,
		notifiers: notifiers,
		metrics:   deps.Metrics,
		logger:    log,
		audit:     logger.NewAuditLoggerFrom(log),
	}
}

func (s *DriverService) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	drivers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

func (s *DriverService) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DriverService) CreateDriver(ctx context.Context, input *models.DriverInput) (*models.Driver, error) {
	driver, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).LogDriverEvent(driver.ID, "application_received", map[string]interface{}{
		"categories": driver.Categories,
	})
	s.audit.LogAction("create", "driver", driver.ID, map[string]interface{}{
		"request_id": logger.RequestIDFromContext(ctx),
	})
	s.changed(driver)
	return driver, nil
}

// UpdateApplicationStatus replaces the application status and appends one
// history entry. A nil notes keeps the current notes.
func (s *DriverService) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string) (*models.Driver, error) {
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown application status %q", status))
	}
	ctx = logger.ContextWithDriverID(ctx, id)

	driver, err := s.repo.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return nil, err
	}

	s.metrics.DriverApplicationUpdated(string(status))
	s.logger.WithContext(ctx).LogDriverEvent(driver.ID, "application_status_changed", map[string]interface{}{
		"status": status,
	})
	s.audit.LogAction("update_status", "driver", driver.ID, map[string]interface{}{
		"status":     status,
		"request_id": logger.RequestIDFromContext(ctx),
	})
	s.changed(driver)
	return driver, nil
}

func (s *DriverService) UpdateAvailability(ctx context.Context, id string, status models.OperationalStatus) (*models.Driver, error) {
	if !status.IsValid() {
		return nil, utils.ValidationError("status", fmt.Sprintf("unknown operational status %q", status))
	}
	ctx = logger.ContextWithDriverID(ctx, id)

	driver, err := s.repo.UpdateOperationalStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).LogDriverEvent(driver.ID, "availability_changed", map[string]interface{}{
		"status": status,
	})
	s.changed(driver)
	return driver, nil
}

func (s *DriverService) changed(driver *models.Driver) {
	for _, notifier := range s.notifiers {
		notifier.DriverUpdated(driver.Clone())
	}
}
