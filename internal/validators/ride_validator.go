package validators

import (
	"gopet/internal/models"
)

type CreateRideRequest struct {
	TutorName          string `json:"tutorName" validate:"required,min=2"`
	PetID              string `json:"petId" validate:"required"`
	Category           string `json:"category" validate:"required,oneof=BASIC PLUS SUV VET"`
	PickupAddress      string `json:"pickupAddress" validate:"required"`
	DestinationAddress string `json:"destinationAddress" validate:"required"`
	ScheduledAt        string `json:"scheduledAt" validate:"required,iso8601"`
	Notes              string `json:"notes" validate:"omitempty"`
}

func (r *CreateRideRequest) ToInput() *models.RideInput {
	return &models.RideInput{
		TutorName:          r.TutorName,
		PetID:              r.PetID,
		Category:           models.RideCategory(r.Category),
		PickupAddress:      r.PickupAddress,
		DestinationAddress: r.DestinationAddress,
		ScheduledAt:        r.ScheduledAt,
		Notes:              r.Notes,
	}
}

// UpdateRideStatusRequest accepts any known status; ordering is enforced by
// the store.
type UpdateRideStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=REQUESTED DISPATCHING DRIVER_ACCEPTED EN_ROUTE_PICKUP ARRIVED_PICKUP PET_ONBOARD EN_ROUTE_DROPOFF COMPLETED CANCELLED_BY_TUTOR CANCELLED_BY_DRIVER CANCELLED_BY_SYSTEM"`
	Description string `json:"description" validate:"omitempty,max=280"`
}

type CreateMessageRequest struct {
	SenderRole string `json:"senderRole" validate:"required,oneof=tutor driver support"`
	Content    string `json:"content" validate:"required,min=2"`
}

func (r *CreateMessageRequest) ToInput() *models.MessageInput {
	return &models.MessageInput{
		SenderRole: models.SenderRole(r.SenderRole),
		Content:    r.Content,
	}
}
