package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopet/internal/utils"
)

func validDriverInput() *DriverInput {
	return &DriverInput{
		Name:             "Camila Duarte",
		Email:            "Camila@GoPet.com ",
		LicenseNumber:    "12345678900",
		LicenseExpiresAt: "2030-01-01",
		Vehicle:          Vehicle{Model: "Doblò", Plate: "FHP2B19", Year: "2022"},
		Categories:       []RideCategory{RideCategoryBasic},
		Equipments:       []string{"Kit limpeza"},
	}
}

func TestNewDriverDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	driver, err := NewDriver(validDriverInput(), "drv_1", now)
	require.NoError(t, err)

	assert.Equal(t, ApplicationStatusPending, driver.ApplicationStatus)
	assert.Equal(t, OperationalStatusOffline, driver.Status)
	assert.Equal(t, []string{HistoryApplicationReceived}, driver.ApplicationHistory)
	assert.Equal(t, "camila@gopet.com", driver.Email)
	assert.Equal(t, DefaultDriverRating, driver.Rating)
	assert.Equal(t, now, driver.CreatedAt)
	assert.Equal(t, now, driver.UpdatedAt)
}

func TestNewDriverRejectsEmptyLists(t *testing.T) {
	noCategories := validDriverInput()
	noCategories.Categories = nil
	_, err := NewDriver(noCategories, "drv_1", time.Now())
	assert.True(t, errors.Is(err, utils.ErrValidation))

	blankEquipments := validDriverInput()
	blankEquipments.Equipments = []string{"  "}
	_, err = NewDriver(blankEquipments, "drv_1", time.Now())
	assert.True(t, errors.Is(err, utils.ErrValidation))

	badCategory := validDriverInput()
	badCategory.Categories = []RideCategory{"LIMO"}
	_, err = NewDriver(badCategory, "drv_1", time.Now())
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestApplyStatusAppendsHistory(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	driver, err := NewDriver(validDriverInput(), "drv_1", start)
	require.NoError(t, err)

	ok := "ok"
	driver.ApplyStatus(ApplicationStatusApproved, &ok, start.Add(time.Minute))
	first := driver.ApplicationHistory[1]
	driver.ApplyStatus(ApplicationStatusApproved, &ok, start.Add(2*time.Minute))

	require.Len(t, driver.ApplicationHistory, 3)
	assert.Equal(t, HistoryApplicationReceived, driver.ApplicationHistory[0])
	assert.Equal(t, first, driver.ApplicationHistory[1])
	assert.Equal(t, "APPROVED · 2024-05-01T12:01:00Z · ok", first)
	assert.Equal(t, ApplicationStatusApproved, driver.ApplicationStatus)
	assert.Equal(t, "ok", driver.Notes)
	assert.Equal(t, start.Add(2*time.Minute), driver.UpdatedAt)
}

func TestApplyStatusWithoutNotesKeepsExistingNotes(t *testing.T) {
	driver, err := NewDriver(validDriverInput(), "drv_1", time.Now())
	require.NoError(t, err)

	notes := "Checklist em andamento"
	driver.ApplyStatus(ApplicationStatusSuspended, &notes, time.Now())
	driver.ApplyStatus(ApplicationStatusApproved, nil, time.Now())

	assert.Equal(t, notes, driver.Notes)
	last := driver.ApplicationHistory[len(driver.ApplicationHistory)-1]
	assert.True(t, strings.HasPrefix(last, "APPROVED · "))
	assert.Equal(t, 1, strings.Count(last, " · "))
}

func TestDriverCloneIsIndependent(t *testing.T) {
	driver, err := NewDriver(validDriverInput(), "drv_1", time.Now())
	require.NoError(t, err)

	clone := driver.Clone()
	clone.ApplicationHistory[0] = "mutated"
	clone.Equipments = append(clone.Equipments, "extra")

	assert.Equal(t, HistoryApplicationReceived, driver.ApplicationHistory[0])
	assert.Len(t, driver.Equipments, 1)
}

func TestRideStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RideStatus
		allowed  bool
	}{
		{RideStatusRequested, RideStatusDispatching, true},
		{RideStatusRequested, RideStatusPetOnboard, true},
		{RideStatusEnRoutePickup, RideStatusDriverAccepted, false},
		{RideStatusEnRoutePickup, RideStatusEnRoutePickup, false},
		{RideStatusDispatching, RideStatusRequested, false},
		{RideStatusPetOnboard, RideStatusCancelledTutor, true},
		{RideStatusRequested, RideStatusCancelledSystem, true},
		{RideStatusCompleted, RideStatusCancelledDriver, false},
		{RideStatusCancelledTutor, RideStatusDispatching, false},
		{RideStatusEnRouteDropoff, RideStatusCompleted, true},
		{RideStatusRequested, RideStatus("TELEPORTED"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestLifecycleIndex(t *testing.T) {
	assert.Equal(t, 0, RideStatusRequested.LifecycleIndex())
	assert.Equal(t, 7, RideStatusCompleted.LifecycleIndex())
	assert.Equal(t, -1, RideStatusCancelledDriver.LifecycleIndex())
	assert.True(t, RideStatusCompleted.IsTerminal())
	assert.True(t, RideStatusCancelledSystem.IsTerminal())
	assert.False(t, RideStatusPetOnboard.IsTerminal())
	assert.Len(t, LifecycleFlow, 8)
}

func TestRideCloneCopiesSnapshots(t *testing.T) {
	ride := &Ride{
		ID:       "ride_1",
		Pet:      Pet{ID: "pet_1", Needs: []string{"manta"}},
		Driver:   &Driver{ID: "drv_1", Equipments: []string{"Caixa"}},
		Timeline: []RideEvent{{ID: "evt_1", Status: RideStatusRequested}},
	}

	clone := ride.Clone()
	clone.Timeline = append(clone.Timeline, RideEvent{ID: "evt_2"})
	clone.Pet.Needs[0] = "changed"
	clone.Driver.Equipments[0] = "changed"

	assert.Len(t, ride.Timeline, 1)
	assert.Equal(t, "manta", ride.Pet.Needs[0])
	assert.Equal(t, "Caixa", ride.Driver.Equipments[0])
}
