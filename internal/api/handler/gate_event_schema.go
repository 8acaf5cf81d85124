package handler

import "time"

type gateEventRequest struct {
	VehicleID string    `json:"vehicle_id" validate:"required"`
	Direction string    `json:"direction"  validate:"required,oneof=entry exit"`
	Selection int       `json:"selection"  validate:"required_if=Direction entry,omitempty,oneof=1 2"`
	Timestamp time.Time `json:"timestamp"  validate:"required"`
	GateID    string    `json:"gate_id"    validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
