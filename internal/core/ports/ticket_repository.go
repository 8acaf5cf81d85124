package ports

import (
	"context"

	"github.com/parkit/parking-system/internal/core/domain"
)

// TicketRepository defines persistence operations for parking sessions.
// The core never deletes tickets; archival is a storage concern.
type TicketRepository interface {
	// Create persists a new ticket and returns the store-assigned id.
	Create(ctx context.Context, t domain.Ticket) (string, error)

	// FindOpenByVehicle retrieves the vehicle's open session (exit time not
	// yet set). Returns domain.ErrNoOpenSession when the vehicle is not
	// currently parked.
	FindOpenByVehicle(ctx context.Context, vehicleID string) (*domain.Ticket, error)

	// Update persists the ticket's exit time and price.
	Update(ctx context.Context, t domain.Ticket) error

	// CountByVehicle returns the number of sessions (open or completed)
	// ever recorded for the vehicle.
	CountByVehicle(ctx context.Context, vehicleID string) (int64, error)

	// ListByVehicle returns the vehicle's session history, newest first.
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Ticket, error)
}
