package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
	"github.com/parkit/parking-system/internal/metrics"
)

// ParkingService orchestrates the parking-session lifecycle: it admits
// vehicles, settles fares on exit, and keeps spot availability consistent
// with the session records.
type ParkingService struct {
	allocator *SpotAllocator
	fares     *FareCalculator
	spots     ports.SpotRepository
	tickets   ports.TicketRepository
	logger    zerolog.Logger

	// vehicleLocks serializes entry/exit per registration so an entry
	// racing an exit for the same vehicle cannot both proceed.
	vehicleLocks *keyedMutex
	// allocMu serializes the allocate→persist→mark-unavailable window per
	// category so two vehicles are never assigned the same spot.
	allocMu map[domain.VehicleCategory]*sync.Mutex

	now func() time.Time
}

func NewParkingService(
	allocator *SpotAllocator,
	fares *FareCalculator,
	spots ports.SpotRepository,
	tickets ports.TicketRepository,
	logger zerolog.Logger,
) *ParkingService {
	return &ParkingService{
		allocator:    allocator,
		fares:        fares,
		spots:        spots,
		tickets:      tickets,
		logger:       logger,
		vehicleLocks: newKeyedMutex(),
		allocMu: map[domain.VehicleCategory]*sync.Mutex{
			domain.CategoryCar:  {},
			domain.CategoryBike: {},
		},
		now: time.Now,
	}
}

// ProcessEntry admits a vehicle: allocates a spot, creates the session,
// then marks the spot unavailable. Ordering is rollback-safe: the spot is
// only marked unavailable after the session is durably persisted, so a
// failed write never strands a spot.
func (s *ParkingService) ProcessEntry(ctx context.Context, input ports.EntryInput) (*ports.EntryResult, error) {
	category, err := domain.ParseVehicleCategory(input.Category)
	if err != nil {
		return nil, err
	}
	vehicleID := strings.TrimSpace(input.VehicleID)
	if vehicleID == "" {
		return nil, domain.ErrInvalidVehicleID
	}

	unlock := s.vehicleLocks.Lock(vehicleID)
	defer unlock()

	// Reject double entry: the original behaviour was undefined, here a
	// second entry while parked is an explicit error.
	if _, err := s.tickets.FindOpenByVehicle(ctx, vehicleID); err == nil {
		return nil, domain.ErrVehicleAlreadyParked
	} else if !errors.Is(err, domain.ErrNoOpenSession) {
		return nil, fmt.Errorf("check open session: %w", err)
	}

	prior, err := s.tickets.CountByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	s.allocMu[category].Lock()
	defer s.allocMu[category].Unlock()

	spot, err := s.allocator.NextAvailable(ctx, category)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, domain.ErrNoAvailableSpot
	}

	ticket := domain.Ticket{
		Spot:      domain.Spot{ID: spot.ID, Category: spot.Category, Available: false},
		VehicleID: vehicleID,
		EntryTime: s.now().UTC(),
	}

	ticketID, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		// Spot availability untouched: nothing to roll back.
		s.logger.Error().Err(err).Str("vehicle_id", vehicleID).Msg("failed to persist session")
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.spots.SetAvailability(ctx, spot.ID, false); err != nil {
		s.logger.Error().Err(err).Int("spot_id", spot.ID).Msg("failed to mark spot unavailable")
		return nil, fmt.Errorf("reserve spot: %w", err)
	}

	metrics.EntriesTotal.WithLabelValues(string(category)).Inc()
	metrics.OccupiedSpots.WithLabelValues(string(category)).Inc()

	returning := prior > 0
	s.logger.Info().
		Str("vehicle_id", vehicleID).
		Str("category", string(category)).
		Int("spot_id", spot.ID).
		Bool("returning_customer", returning).
		Msg("vehicle entered")

	return &ports.EntryResult{
		TicketID:          ticketID,
		SpotID:            spot.ID,
		Category:          string(category),
		VehicleID:         vehicleID,
		EntryTime:         ticket.EntryTime,
		ReturningCustomer: returning,
	}, nil
}

// ProcessExit settles a vehicle's fare and frees its spot. The spot is
// freed even when the fare update fails: by exit time the vehicle is
// physically leaving, so trapping the spot would be worse than losing the
// price write. This asymmetry versus entry is deliberate.
func (s *ParkingService) ProcessExit(ctx context.Context, input ports.ExitInput) (*ports.ExitResult, error) {
	vehicleID := strings.TrimSpace(input.VehicleID)
	if vehicleID == "" {
		return nil, domain.ErrInvalidVehicleID
	}

	unlock := s.vehicleLocks.Lock(vehicleID)
	defer unlock()

	open, err := s.tickets.FindOpenByVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}

	// A vehicle with more than one recorded session is a returning
	// customer: the open session itself already counts as one.
	count, err := s.tickets.CountByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	discount := count > 1

	closed := open.WithExit(s.now().UTC())
	price, err := s.fares.Calculate(closed, discount)
	if err != nil {
		return nil, err
	}
	closed = closed.WithPrice(price)

	updateErr := s.tickets.Update(ctx, closed)
	if updateErr != nil {
		s.logger.Error().Err(updateErr).Str("vehicle_id", vehicleID).Msg("failed to persist settled session")
	}

	category := string(closed.Spot.Category)

	if err := s.spots.SetAvailability(ctx, closed.Spot.ID, true); err != nil {
		s.logger.Error().Err(err).Int("spot_id", closed.Spot.ID).Msg("failed to free spot")
		return nil, fmt.Errorf("free spot: %w", err)
	}
	// The spot is free from here on, whatever happened to the fare write.
	metrics.OccupiedSpots.WithLabelValues(category).Dec()

	if updateErr != nil {
		return nil, fmt.Errorf("update session: %w", updateErr)
	}

	metrics.ExitsTotal.WithLabelValues(category, strconv.FormatBool(discount)).Inc()
	metrics.FareAmount.WithLabelValues(category).Observe(price)

	s.logger.Info().
		Str("vehicle_id", vehicleID).
		Int("spot_id", closed.Spot.ID).
		Float64("price", price).
		Bool("discount_applied", discount).
		Msg("vehicle exited")

	return &ports.ExitResult{
		TicketID:        closed.ID,
		SpotID:          closed.Spot.ID,
		Category:        string(closed.Spot.Category),
		VehicleID:       vehicleID,
		EntryTime:       closed.EntryTime,
		ExitTime:        *closed.ExitTime,
		Price:           price,
		DiscountApplied: discount,
	}, nil
}

// GetHistory returns the vehicle's session history, newest first.
func (s *ParkingService) GetHistory(ctx context.Context, vehicleID string) ([]ports.SessionView, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, domain.ErrInvalidVehicleID
	}

	tickets, err := s.tickets.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	views := make([]ports.SessionView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, ports.SessionView{
			TicketID:  t.ID,
			SpotID:    t.Spot.ID,
			Category:  string(t.Spot.Category),
			EntryTime: t.EntryTime,
			ExitTime:  t.ExitTime,
			Price:     t.Price,
		})
	}
	return views, nil
}
