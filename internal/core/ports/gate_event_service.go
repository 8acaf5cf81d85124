package ports

import (
	"context"
	"time"
)

// GateEventInput is the DTO passed from the transport layer to GateEventService.
type GateEventInput struct {
	VehicleID string
	Direction string // "entry" or "exit"
	Selection int    // numeric category menu choice, entry only
	Timestamp time.Time
	GateID    string
}

// GateEventService processes vehicle movements reported by gate devices.
type GateEventService interface {
	Process(ctx context.Context, event GateEventInput) error
}
