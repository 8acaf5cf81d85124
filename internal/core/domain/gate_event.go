package domain

import "time"

// GateDirection tells whether a gate device saw a vehicle arriving or leaving.
type GateDirection string

const (
	DirectionEntry GateDirection = "entry"
	DirectionExit  GateDirection = "exit"
)

// GateEvent is a vehicle movement reported by a gate device. Selection is
// the numeric category menu choice (entry only).
type GateEvent struct {
	VehicleID string
	Direction GateDirection
	Selection int
	Timestamp time.Time
	GateID    string
}
