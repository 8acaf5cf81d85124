package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
)

// SpotAllocator finds the next free spot for a vehicle category. It never
// marks a spot unavailable itself: reserving is an explicit, separate
// mutation performed by the orchestrator once the session is durably
// created, so a failed session write cannot strand a spot.
type SpotAllocator struct {
	spots ports.SpotRepository
	log   zerolog.Logger
}

func NewSpotAllocator(spots ports.SpotRepository, log zerolog.Logger) *SpotAllocator {
	return &SpotAllocator{spots: spots, log: log}
}

// NextAvailable returns the lowest-numbered free spot of the category, or
// (nil, nil) when the facility is full for that category. A full facility
// is an expected outcome, not an error.
func (a *SpotAllocator) NextAvailable(ctx context.Context, category domain.VehicleCategory) (*domain.Spot, error) {
	spot, err := a.spots.FindAvailable(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("allocate spot: %w", err)
	}
	if spot == nil {
		a.log.Debug().Str("category", string(category)).Msg("no available spot")
		return nil, nil
	}
	return spot, nil
}
