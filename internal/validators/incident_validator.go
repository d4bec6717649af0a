package validators

import (
	"gopet/internal/models"
)

type CreateIncidentRequest struct {
	RideID      string `json:"rideId" validate:"required"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high"`
	Status      string `json:"status" validate:"omitempty,oneof=open triaged resolved"`
}

func (r *CreateIncidentRequest) ToInput() *models.IncidentInput {
	return &models.IncidentInput{
		RideID:      r.RideID,
		Title:       r.Title,
		Description: r.Description,
		Severity:    models.IncidentSeverity(r.Severity),
		Status:      models.IncidentStatus(r.Status),
	}
}

type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open triaged resolved"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress done"`
}
