package handler

import "time"

type entryRequest struct {
	Category  string `json:"category"   validate:"required,oneof=CAR BIKE"`
	VehicleID string `json:"vehicle_id" validate:"required"`
}

type entryResponse struct {
	TicketID          string    `json:"ticket_id"`
	SpotID            int       `json:"spot_id"`
	Category          string    `json:"category"`
	VehicleID         string    `json:"vehicle_id"`
	EntryTime         time.Time `json:"entry_time"`
	ReturningCustomer bool      `json:"returning_customer"`
}

type exitRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
}

type exitResponse struct {
	TicketID        string    `json:"ticket_id"`
	SpotID          int       `json:"spot_id"`
	Category        string    `json:"category"`
	VehicleID       string    `json:"vehicle_id"`
	EntryTime       time.Time `json:"entry_time"`
	ExitTime        time.Time `json:"exit_time"`
	Price           float64   `json:"price"`
	DiscountApplied bool      `json:"discount_applied"`
}

type sessionResponse struct {
	TicketID  string     `json:"ticket_id"`
	SpotID    int        `json:"spot_id"`
	Category  string     `json:"category"`
	EntryTime time.Time  `json:"entry_time"`
	ExitTime  *time.Time `json:"exit_time,omitempty"`
	Price     float64    `json:"price"`
}

type sessionHistoryResponse struct {
	VehicleID string            `json:"vehicle_id"`
	Sessions  []sessionResponse `json:"sessions"`
}
