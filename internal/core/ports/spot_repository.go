package ports

import (
	"context"

	"github.com/parkit/parking-system/internal/core/domain"
)

// SpotRepository defines persistence operations for parking spots.
type SpotRepository interface {
	// FindAvailable returns the lowest-numbered available spot of the given
	// category, or (nil, nil) when every spot of that category is taken.
	FindAvailable(ctx context.Context, category domain.VehicleCategory) (*domain.Spot, error)

	// SetAvailability flips the availability flag of a spot.
	SetAvailability(ctx context.Context, spotID int, available bool) error
}
