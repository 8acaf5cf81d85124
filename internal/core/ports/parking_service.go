package ports

import (
	"context"
	"time"
)

// EntryInput carries the data needed to admit a vehicle.
type EntryInput struct {
	Category  string
	VehicleID string
}

// EntryResult is returned by the service after a vehicle is admitted.
type EntryResult struct {
	TicketID  string
	SpotID    int
	Category  string
	VehicleID string
	EntryTime time.Time
	// ReturningCustomer is true when the vehicle has parked here before.
	// Informational only: discount eligibility is recomputed at exit.
	ReturningCustomer bool
}

// ExitInput carries the data needed to release a vehicle.
type ExitInput struct {
	VehicleID string
}

// ExitResult is the settled fare returned when a vehicle leaves.
type ExitResult struct {
	TicketID        string
	SpotID          int
	Category        string
	VehicleID       string
	EntryTime       time.Time
	ExitTime        time.Time
	Price           float64
	DiscountApplied bool
}

// SessionView is a single history entry returned by GetHistory.
type SessionView struct {
	TicketID  string
	SpotID    int
	Category  string
	EntryTime time.Time
	ExitTime  *time.Time
	Price     float64
}

// ParkingService defines the use-case operations of the facility.
type ParkingService interface {
	ProcessEntry(ctx context.Context, input EntryInput) (*EntryResult, error)
	ProcessExit(ctx context.Context, input ExitInput) (*ExitResult, error)
	GetHistory(ctx context.Context, vehicleID string) ([]SessionView, error)
}
