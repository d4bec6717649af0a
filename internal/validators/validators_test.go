package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopet/internal/models"
	"gopet/internal/utils"
)

func validDriverRequest() *CreateDriverRequest {
	return &CreateDriverRequest{
		Name:             "Beatriz Lima",
		Email:            "bia@gopet.com",
		LicenseNumber:    "5566778899",
		LicenseExpiresAt: "2029-04-01",
		Vehicle:          VehicleRequest{Model: "Kicks", Plate: "ABC1D23", Year: "2022"},
		Categories:       []string{"BASIC", "VET"},
		Equipments:       []string{"Kit limpeza"},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, utils.ErrValidation))

	var fe *utils.FieldError
	require.True(t, errors.As(err, &fe))
	return fe.Fields
}

func TestCreateDriverRequestValid(t *testing.T) {
	req := validDriverRequest()
	req.TrainingCompletedAt = "2024-08-10T09:30:00Z"

	assert.NoError(t, ValidateStruct(req))

	input := req.ToInput()
	assert.Equal(t, []models.RideCategory{models.RideCategoryBasic, models.RideCategoryVet}, input.Categories)
	assert.Equal(t, "ABC1D23", input.Vehicle.Plate)
}

func TestCreateDriverRequestFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateDriverRequest)
		field  string
	}{
		{"short name", func(r *CreateDriverRequest) { r.Name = "Bi" }, "name"},
		{"bad email", func(r *CreateDriverRequest) { r.Email = "not-an-email" }, "email"},
		{"missing license", func(r *CreateDriverRequest) { r.LicenseNumber = "" }, "cnhNumber"},
		{"bad expiry", func(r *CreateDriverRequest) { r.LicenseExpiresAt = "next year" }, "cnhExpiresAt"},
		{"short plate", func(r *CreateDriverRequest) { r.Vehicle.Plate = "AB1" }, "vehicle.plate"},
		{"bad year", func(r *CreateDriverRequest) { r.Vehicle.Year = "22" }, "vehicle.year"},
		{"no categories", func(r *CreateDriverRequest) { r.Categories = []string{} }, "categories"},
		{"unknown category", func(r *CreateDriverRequest) { r.Categories = []string{"LIMO"} }, "categories[0]"},
		{"no equipments", func(r *CreateDriverRequest) { r.Equipments = nil }, "equipments"},
		{"blank equipment", func(r *CreateDriverRequest) { r.Equipments = []string{" "} }, "equipments[0]"},
		{"bad training date", func(r *CreateDriverRequest) { r.TrainingCompletedAt = "ontem" }, "trainingCompletedAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDriverRequest()
			tt.mutate(req)

			fields := fieldErrors(t, ValidateStruct(req))
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUpdateDriverStatusRequest(t *testing.T) {
	assert.NoError(t, ValidateStruct(&UpdateDriverStatusRequest{Status: "APPROVED"}))

	fields := fieldErrors(t, ValidateStruct(&UpdateDriverStatusRequest{Status: "ARCHIVED"}))
	assert.Contains(t, fields, "status")

	long := string(make([]byte, 281))
	fields = fieldErrors(t, ValidateStruct(&UpdateDriverStatusRequest{Status: "APPROVED", Notes: &long}))
	assert.Contains(t, fields, "notes")
}

func TestCreateRideRequest(t *testing.T) {
	req := &CreateRideRequest{
		TutorName:          "Marina",
		PetID:              "pet_1",
		Category:           "VET",
		PickupAddress:      "Rua A, 10",
		DestinationAddress: "Vet Vida",
		ScheduledAt:        "2024-05-01T10:00:00.000Z",
	}
	require.NoError(t, ValidateStruct(req))
	assert.Equal(t, models.RideCategoryVet, req.ToInput().Category)

	req.Category = "LIMO"
	req.ScheduledAt = "amanhã"
	fields := fieldErrors(t, ValidateStruct(req))
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "scheduledAt")
}

func TestCreateMessageRequest(t *testing.T) {
	assert.NoError(t, ValidateStruct(&CreateMessageRequest{SenderRole: "support", Content: "Oi"}))

	fields := fieldErrors(t, ValidateStruct(&CreateMessageRequest{SenderRole: "vet", Content: "x"}))
	assert.Contains(t, fields, "senderRole")
	assert.Contains(t, fields, "content")
}

func TestCreateIncidentRequest(t *testing.T) {
	req := &CreateIncidentRequest{RideID: "ride_1", Title: "SOS", Description: "Pet agitado", Severity: "high"}
	require.NoError(t, ValidateStruct(req))
	assert.Equal(t, models.IncidentStatus(""), req.ToInput().Status)

	req.Status = "closed"
	req.Severity = "critical"
	fields := fieldErrors(t, ValidateStruct(req))
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "severity")
}

func TestTicketStatusRequest(t *testing.T) {
	assert.NoError(t, ValidateStruct(&UpdateTicketStatusRequest{Status: "in_progress"}))
	assert.Error(t, ValidateStruct(&UpdateTicketStatusRequest{Status: "archived"}))
}
