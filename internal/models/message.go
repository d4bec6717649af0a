package models

import "time"

type SenderRole string

const (
	SenderRoleTutor   SenderRole = "tutor"
	SenderRoleDriver  SenderRole = "driver"
	SenderRoleSupport SenderRole = "support"
)

func (r SenderRole) IsValid() bool {
	switch r {
	case SenderRoleTutor, SenderRoleDriver, SenderRoleSupport:
		return true
	}
	return false
}

type ChatMessage struct {
	ID         string     `json:"id" bson:"_id"`
	RideID     string     `json:"rideId" bson:"ride_id"`
	SenderRole SenderRole `json:"senderRole" bson:"sender_role"`
	Content    string     `json:"content" bson:"content"`
	Timestamp  time.Time  `json:"timestamp" bson:"timestamp"`
}

type MessageInput struct {
	SenderRole SenderRole
	Content    string
}
