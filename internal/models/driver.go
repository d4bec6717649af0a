package models

import (
	"fmt"
	"strings"
	"time"

	"gopet/internal/utils"
)

type OperationalStatus string
type ApplicationStatus string

const (
	OperationalStatusOnline  OperationalStatus = "ONLINE"
	OperationalStatusOffline OperationalStatus = "OFFLINE"
	OperationalStatusOnTrip  OperationalStatus = "ON_TRIP"

	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusApproved  ApplicationStatus = "APPROVED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusSuspended ApplicationStatus = "SUSPENDED"
	ApplicationStatusInactive  ApplicationStatus = "INACTIVE"

	// HistoryApplicationReceived opens every new driver's history.
	HistoryApplicationReceived = "Cadastro recebido"

	DefaultDriverRating = 5.0
)

func (s OperationalStatus) IsValid() bool {
	switch s {
	case OperationalStatusOnline, OperationalStatusOffline, OperationalStatusOnTrip:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected,
		ApplicationStatusSuspended, ApplicationStatusInactive:
		return true
	}
	return false
}

type Vehicle struct {
	Model string `json:"model" bson:"model"`
	Plate string `json:"plate" bson:"plate"`
	Year  string `json:"year" bson:"year"`
}

type Driver struct {
	ID                  string            `json:"id" bson:"_id"`
	Name                string            `json:"name" bson:"name"`
	Email               string            `json:"email" bson:"email"`
	Phone               string            `json:"phone,omitempty" bson:"phone,omitempty"`
	LicenseNumber       string            `json:"cnhNumber" bson:"license_number"`
	LicenseExpiresAt    string            `json:"cnhExpiresAt" bson:"license_expires_at"`
	LicenseDocumentURL  string            `json:"cnhDocumentUrl,omitempty" bson:"license_document_url,omitempty"`
	ProfilePhotoURL     string            `json:"profilePhotoUrl,omitempty" bson:"profile_photo_url,omitempty"`
	TrainingCompletedAt string            `json:"trainingCompletedAt,omitempty" bson:"training_completed_at,omitempty"`
	Rating              float64           `json:"rating" bson:"rating"`
	CompletedRuns       int               `json:"completedRuns" bson:"completed_runs"`
	Equipments          []string          `json:"equipments" bson:"equipments"`
	Status              OperationalStatus `json:"status" bson:"status"`
	ETAMinutes          int               `json:"etaMinutes,omitempty" bson:"eta_minutes,omitempty"`
	Vehicle             Vehicle           `json:"vehicle" bson:"vehicle"`
	Categories          []RideCategory    `json:"categories" bson:"categories"`
	ApplicationStatus   ApplicationStatus `json:"applicationStatus" bson:"application_status"`
	ApplicationHistory  []string          `json:"applicationHistory" bson:"application_history"`
	Notes               string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt           time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time         `json:"updatedAt" bson:"updated_at"`
}

// DriverInput is the validated payload of a driver application.
type DriverInput struct {
	Name                string
	Email               string
	Phone               string
	LicenseNumber       string
	LicenseExpiresAt    string
	LicenseDocumentURL  string
	ProfilePhotoURL     string
	TrainingCompletedAt string
	Vehicle             Vehicle
	Categories          []RideCategory
	Equipments          []string
}

// NewDriver builds a fresh application record. Every backend creates
// drivers through it so defaults never drift between stores.
func NewDriver(input *DriverInput, id string, now time.Time) (*Driver, error) {
	if input == nil {
		return nil, utils.ValidationError("driver", "payload is required")
	}
	if len(input.Categories) == 0 {
		return nil, utils.ValidationError("categories", "at least one category is required")
	}
	for _, category := range input.Categories {
		if !category.IsValid() {
			return nil, utils.ValidationError("categories", fmt.Sprintf("unknown category %q", category))
		}
	}
	equipments := make([]string, 0, len(input.Equipments))
	for _, equipment := range input.Equipments {
		if equipment = strings.TrimSpace(equipment); equipment != "" {
			equipments = append(equipments, equipment)
		}
	}
	if len(equipments) == 0 {
		return nil, utils.ValidationError("equipments", "at least one equipment is required")
	}

	return &Driver{
		ID:                  id,
		Name:                input.Name,
		Email:               strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:               input.Phone,
		LicenseNumber:       input.LicenseNumber,
		LicenseExpiresAt:    input.LicenseExpiresAt,
		LicenseDocumentURL:  input.LicenseDocumentURL,
		ProfilePhotoURL:     input.ProfilePhotoURL,
		TrainingCompletedAt: input.TrainingCompletedAt,
		Rating:              DefaultDriverRating,
		CompletedRuns:       0,
		Equipments:          equipments,
		Status:              OperationalStatusOffline,
		Vehicle:             input.Vehicle,
		Categories:          append([]RideCategory(nil), input.Categories...),
		ApplicationStatus:   ApplicationStatusPending,
		ApplicationHistory:  []string{HistoryApplicationReceived},
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// FormatHistoryEntry renders one application history line:
// "STATUS · <RFC3339 timestamp>" with " · notes" appended when present.
func FormatHistoryEntry(status ApplicationStatus, at time.Time, notes *string) string {
	entry := fmt.Sprintf("%s · %s", status, at.UTC().Format(time.RFC3339))
	if notes != nil && strings.TrimSpace(*notes) != "" {
		entry += " · " + strings.TrimSpace(*notes)
	}
	return entry
}

// ApplyStatus moves the application to status, appending exactly one history
// entry. A nil notes pointer keeps the current notes.
func (d *Driver) ApplyStatus(status ApplicationStatus, notes *string, now time.Time) {
	d.ApplicationStatus = status
	d.ApplicationHistory = append(d.ApplicationHistory, FormatHistoryEntry(status, now, notes))
	if notes != nil {
		d.Notes = *notes
	}
	d.UpdatedAt = now
}

func (d *Driver) Clone() *Driver {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Equipments = append([]string(nil), d.Equipments...)
	clone.Categories = append([]RideCategory(nil), d.Categories...)
	clone.ApplicationHistory = append([]string(nil), d.ApplicationHistory...)
	return &clone
}
