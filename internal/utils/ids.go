package utils

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DriverIDPrefix   = "drv_"
	RideIDPrefix     = "ride_"
	EventIDPrefix    = "evt_"
	MessageIDPrefix  = "msg_"
	IncidentIDPrefix = "inc_"
)

// NewID returns prefix followed by the first 8 hex characters of a random
// UUID, e.g. "ride_3f9a1c2b".
func NewID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewRequestID returns a full UUID for request correlation.
func NewRequestID() string {
	return uuid.NewString()
}
