package validators

import (
	"gopet/internal/models"
)

type VehicleRequest struct {
	Model string `json:"model" validate:"required"`
	Plate string `json:"plate" validate:"required,min=5"`
	Year  string `json:"year" validate:"required,model_year"`
}

type CreateDriverRequest struct {
	Name                string         `json:"name" validate:"required,min=3"`
	Email               string         `json:"email" validate:"required,email"`
	Phone               string         `json:"phone" validate:"omitempty"`
	LicenseNumber       string         `json:"cnhNumber" validate:"required"`
	LicenseExpiresAt    string         `json:"cnhExpiresAt" validate:"required,iso8601"`
	Vehicle             VehicleRequest `json:"vehicle"`
	Categories          []string       `json:"categories" validate:"required,min=1,dive,oneof=BASIC PLUS SUV VET"`
	Equipments          []string       `json:"equipments" validate:"required,min=1,dive,notblank"`
	TrainingCompletedAt string         `json:"trainingCompletedAt" validate:"omitempty,iso8601"`
	LicenseDocumentURL  string         `json:"cnhDocumentUrl" validate:"omitempty"`
	ProfilePhotoURL     string         `json:"profilePhotoUrl" validate:"omitempty"`
}

func (r *CreateDriverRequest) ToInput() *models.DriverInput {
	categories := make([]models.RideCategory, len(r.Categories))
	for i, category := range r.Categories {
		categories[i] = models.RideCategory(category)
	}

	return &models.DriverInput{
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		LicenseNumber:       r.LicenseNumber,
		LicenseExpiresAt:    r.LicenseExpiresAt,
		LicenseDocumentURL:  r.LicenseDocumentURL,
		ProfilePhotoURL:     r.ProfilePhotoURL,
		TrainingCompletedAt: r.TrainingCompletedAt,
		Vehicle: models.Vehicle{
			Model: r.Vehicle.Model,
			Plate: r.Vehicle.Plate,
			Year:  r.Vehicle.Year,
		},
		Categories: categories,
		Equipments: r.Equipments,
	}
}

type UpdateDriverStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED SUSPENDED INACTIVE"`
	Notes  *string `json:"notes" validate:"omitempty,max=280"`
}

type UpdateDriverAvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=ONLINE OFFLINE ON_TRIP"`
}
