package models

import "time"

type TicketPriority string
type TicketStatus string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"

	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusDone       TicketStatus = "done"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusDone:
		return true
	}
	return false
}

type SupportTicket struct {
	ID        string         `json:"id" bson:"_id"`
	RideID    string         `json:"rideId,omitempty" bson:"ride_id,omitempty"`
	Subject   string         `json:"subject" bson:"subject"`
	Summary   string         `json:"summary" bson:"summary"`
	Priority  TicketPriority `json:"priority" bson:"priority"`
	Status    TicketStatus   `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
}
