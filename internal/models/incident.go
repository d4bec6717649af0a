package models

import "time"

type IncidentSeverity string
type IncidentStatus string

const (
	IncidentSeverityLow    IncidentSeverity = "low"
	IncidentSeverityMedium IncidentSeverity = "medium"
	IncidentSeverityHigh   IncidentSeverity = "high"

	IncidentStatusOpen     IncidentStatus = "open"
	IncidentStatusTriaged  IncidentStatus = "triaged"
	IncidentStatusResolved IncidentStatus = "resolved"
)

func (s IncidentSeverity) IsValid() bool {
	switch s {
	case IncidentSeverityLow, IncidentSeverityMedium, IncidentSeverityHigh:
		return true
	}
	return false
}

func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusTriaged, IncidentStatusResolved:
		return true
	}
	return false
}

type Incident struct {
	ID          string           `json:"id" bson:"_id"`
	RideID      string           `json:"rideId" bson:"ride_id"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description" bson:"description"`
	Severity    IncidentSeverity `json:"severity" bson:"severity"`
	Status      IncidentStatus   `json:"status" bson:"status"`
	CreatedAt   time.Time        `json:"createdAt" bson:"created_at"`
}

type IncidentInput struct {
	RideID      string
	Title       string
	Description string
	Severity    IncidentSeverity
	Status      IncidentStatus
}
