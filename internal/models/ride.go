package models

import (
	"time"
)

type RideCategory string
type RideStatus string

const (
	RideCategoryBasic RideCategory = "BASIC"
	RideCategoryPlus  RideCategory = "PLUS"
	RideCategorySUV   RideCategory = "SUV"
	RideCategoryVet   RideCategory = "VET"
)

const (
	RideStatusRequested       RideStatus = "REQUESTED"
	RideStatusDispatching     RideStatus = "DISPATCHING"
	RideStatusDriverAccepted  RideStatus = "DRIVER_ACCEPTED"
	RideStatusEnRoutePickup   RideStatus = "EN_ROUTE_PICKUP"
	RideStatusArrivedPickup   RideStatus = "ARRIVED_PICKUP"
	RideStatusPetOnboard      RideStatus = "PET_ONBOARD"
	RideStatusEnRouteDropoff  RideStatus = "EN_ROUTE_DROPOFF"
	RideStatusCompleted       RideStatus = "COMPLETED"
	RideStatusCancelledTutor  RideStatus = "CANCELLED_BY_TUTOR"
	RideStatusCancelledDriver RideStatus = "CANCELLED_BY_DRIVER"
	RideStatusCancelledSystem RideStatus = "CANCELLED_BY_SYSTEM"
)

// LifecycleFlow is the ordered, non-cancelled path of a ride.
var LifecycleFlow = []RideStatus{
	RideStatusRequested,
	RideStatusDispatching,
	RideStatusDriverAccepted,
	RideStatusEnRoutePickup,
	RideStatusArrivedPickup,
	RideStatusPetOnboard,
	RideStatusEnRouteDropoff,
	RideStatusCompleted,
}

func (c RideCategory) IsValid() bool {
	switch c {
	case RideCategoryBasic, RideCategoryPlus, RideCategorySUV, RideCategoryVet:
		return true
	}
	return false
}

func (s RideStatus) IsValid() bool {
	return s.LifecycleIndex() >= 0 || s.IsCancellation()
}

// LifecycleIndex is the position of s in LifecycleFlow, or -1 for
// cancellations and unknown values.
func (s RideStatus) LifecycleIndex() int {
	for i, status := range LifecycleFlow {
		if status == s {
			return i
		}
	}
	return -1
}

func (s RideStatus) IsCancellation() bool {
	switch s {
	case RideStatusCancelledTutor, RideStatusCancelledDriver, RideStatusCancelledSystem:
		return true
	}
	return false
}

func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s.IsCancellation()
}

// CanTransitionTo reports whether a ride in s may move to next. Terminal
// states accept nothing. Any live ride may be cancelled. Otherwise the ride
// must move strictly forward along LifecycleFlow; skipping steps is allowed.
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next.IsCancellation() {
		return true
	}
	return next.LifecycleIndex() > s.LifecycleIndex()
}

type RideEvent struct {
	ID          string     `json:"id" bson:"_id"`
	Status      RideStatus `json:"status" bson:"status"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Timestamp   time.Time  `json:"timestamp" bson:"timestamp"`
}

type Ride struct {
	ID                   string       `json:"id" bson:"_id"`
	TutorName            string       `json:"tutorName" bson:"tutor_name"`
	Pet                  Pet          `json:"pet" bson:"pet"`
	Driver               *Driver      `json:"driver,omitempty" bson:"driver,omitempty"`
	Category             RideCategory `json:"category" bson:"category"`
	Status               RideStatus   `json:"status" bson:"status"`
	PickupAddress        string       `json:"pickupAddress" bson:"pickup_address"`
	DestinationAddress   string       `json:"destinationAddress" bson:"destination_address"`
	ScheduledAt          string       `json:"scheduledAt" bson:"scheduled_at"`
	EstimatedDistanceKm  float64      `json:"estimatedDistanceKm" bson:"estimated_distance_km"`
	EstimatedDurationMin int          `json:"estimatedDurationMin" bson:"estimated_duration_min"`
	Price                float64      `json:"price" bson:"price"`
	Notes                string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Timeline             []RideEvent  `json:"timeline" bson:"timeline"`
	LastUpdate           time.Time    `json:"lastUpdate" bson:"last_update"`
}

type RideInput struct {
	TutorName          string
	PetID              string
	Category           RideCategory
	PickupAddress      string
	DestinationAddress string
	ScheduledAt        string
	Notes              string
}

func (r *Ride) Clone() *Ride {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Pet = *r.Pet.Clone()
	clone.Driver = r.Driver.Clone()
	clone.Timeline = append([]RideEvent(nil), r.Timeline...)
	return &clone
}
