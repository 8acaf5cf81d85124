package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
	"github.com/parkit/parking-system/internal/metrics"
)

// DedupChecker abstracts the idempotency store (Redis). Gate devices retry
// on flaky links, so the same movement can arrive more than once.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, vehicleID, direction string, ts time.Time) (bool, error)
	Mark(ctx context.Context, vehicleID, direction string, ts time.Time) error
}

type gateEventService struct {
	parking   ports.ParkingService
	eventRepo ports.GateEventRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewGateEventService returns a GateEventService implementation.
func NewGateEventService(
	parking ports.ParkingService,
	eventRepo ports.GateEventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.GateEventService {
	return &gateEventService{
		parking:   parking,
		eventRepo: eventRepo,
		dedup:     dedup,
		log:       log,
	}
}

// Process validates, deduplicates, and applies a single gate movement.
func (s *gateEventService) Process(ctx context.Context, in ports.GateEventInput) error {
	direction := domain.GateDirection(in.Direction)
	if direction != domain.DirectionEntry && direction != domain.DirectionExit {
		return fmt.Errorf("process gate event: unknown direction %q", in.Direction)
	}

	// 1. Idempotency check — silently skip replayed movements.
	isDup, err := s.dedup.IsDuplicate(ctx, in.VehicleID, in.Direction, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", in.VehicleID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.GateEventsDedupedTotal.WithLabelValues(in.Direction).Inc()
		s.log.Debug().Str("vehicle_id", in.VehicleID).Str("direction", in.Direction).Msg("duplicate gate event skipped")
		return nil
	}

	// 2. Mark as processed before applying (prevents double processing on retry).
	if markErr := s.dedup.Mark(ctx, in.VehicleID, in.Direction, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("vehicle_id", in.VehicleID).Msg("failed to set dedup key")
	}

	// 3. Drive the parking lifecycle.
	switch direction {
	case domain.DirectionEntry:
		category, err := domain.CategoryFromSelection(in.Selection)
		if err != nil {
			return fmt.Errorf("process gate event: %w", err)
		}
		_, err = s.parking.ProcessEntry(ctx, ports.EntryInput{
			Category:  string(category),
			VehicleID: in.VehicleID,
		})
		if err != nil {
			return fmt.Errorf("process gate event: entry: %w", err)
		}
	case domain.DirectionExit:
		_, err := s.parking.ProcessExit(ctx, ports.ExitInput{VehicleID: in.VehicleID})
		if err != nil {
			return fmt.Errorf("process gate event: exit: %w", err)
		}
	}

	// 4. Insert into audit trail (non-fatal on failure).
	auditEvent := &domain.GateEvent{
		VehicleID: in.VehicleID,
		Direction: direction,
		Selection: in.Selection,
		Timestamp: in.Timestamp,
		GateID:    in.GateID,
	}
	if err := s.eventRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", in.VehicleID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("vehicle_id", in.VehicleID).
		Str("direction", in.Direction).
		Str("gate_id", in.GateID).
		Msg("gate event processed")

	return nil
}
