package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/domain"
	"github.com/parkit/parking-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubGateEventRepo struct {
	insertErr error
	inserted  []*domain.GateEvent
}

func (r *stubGateEventRepo) InsertEvent(_ context.Context, e *domain.GateEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, vehicleID, direction string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, vehicleID, direction string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, vehicleID+":"+direction)
	return nil
}

type stubParking struct {
	entries  []ports.EntryInput
	exits    []ports.ExitInput
	entryErr error
	exitErr  error
}

func (p *stubParking) ProcessEntry(_ context.Context, in ports.EntryInput) (*ports.EntryResult, error) {
	if p.entryErr != nil {
		return nil, p.entryErr
	}
	p.entries = append(p.entries, in)
	return &ports.EntryResult{SpotID: 1, Category: in.Category, VehicleID: in.VehicleID}, nil
}

func (p *stubParking) ProcessExit(_ context.Context, in ports.ExitInput) (*ports.ExitResult, error) {
	if p.exitErr != nil {
		return nil, p.exitErr
	}
	p.exits = append(p.exits, in)
	return &ports.ExitResult{SpotID: 1, VehicleID: in.VehicleID}, nil
}

func (p *stubParking) GetHistory(_ context.Context, _ string) ([]ports.SessionView, error) {
	return nil, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newGateSvc(parking *stubParking, repo *stubGateEventRepo, dedup *stubDedup) ports.GateEventService {
	return NewGateEventService(parking, repo, dedup, zerolog.Nop())
}

func TestGateEventService_EntryHappyPath(t *testing.T) {
	parking := &stubParking{}
	repo := &stubGateEventRepo{}
	dedup := &stubDedup{}

	err := newGateSvc(parking, repo, dedup).Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "entry",
		Selection: 1,
		Timestamp: time.Now(),
		GateID:    "gate-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(parking.entries) != 1 || parking.entries[0].Category != "CAR" {
		t.Errorf("expected one CAR entry, got: %+v", parking.entries)
	}
	if len(repo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
	if len(dedup.marked) != 1 {
		t.Errorf("expected dedup key marked")
	}
}

func TestGateEventService_ExitHappyPath(t *testing.T) {
	parking := &stubParking{}
	svc := newGateSvc(parking, &stubGateEventRepo{}, &stubDedup{})

	err := svc.Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "exit",
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(parking.exits) != 1 {
		t.Errorf("expected one exit processed, got: %+v", parking.exits)
	}
}

func TestGateEventService_DuplicateSkipped(t *testing.T) {
	parking := &stubParking{}
	repo := &stubGateEventRepo{}
	dedup := &stubDedup{dupResult: true}

	err := newGateSvc(parking, repo, dedup).Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "entry",
		Selection: 1,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("duplicate must be skipped silently, got: %v", err)
	}
	if len(parking.entries) != 0 {
		t.Errorf("duplicate event must not reach the orchestrator")
	}
	if len(repo.inserted) != 0 {
		t.Errorf("duplicate event must not be audited twice")
	}
}

func TestGateEventService_DedupErrorProcessesAnyway(t *testing.T) {
	parking := &stubParking{}
	dedup := &stubDedup{dupErr: errors.New("redis down")}

	err := newGateSvc(parking, &stubGateEventRepo{}, dedup).Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "exit",
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("dedup failure must not block processing, got: %v", err)
	}
	if len(parking.exits) != 1 {
		t.Errorf("event must still be processed when dedup is unavailable")
	}
}

func TestGateEventService_UnknownDirection(t *testing.T) {
	svc := newGateSvc(&stubParking{}, &stubGateEventRepo{}, &stubDedup{})

	err := svc.Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "sideways",
		Timestamp: time.Now(),
	})
	if err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestGateEventService_InvalidSelection(t *testing.T) {
	parking := &stubParking{}
	svc := newGateSvc(parking, &stubGateEventRepo{}, &stubDedup{})

	err := svc.Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "entry",
		Selection: 9,
		Timestamp: time.Now(),
	})
	if !errors.Is(err, domain.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if len(parking.entries) != 0 {
		t.Errorf("invalid selection must not reach the orchestrator")
	}
}

func TestGateEventService_OrchestratorErrorPropagates(t *testing.T) {
	parking := &stubParking{entryErr: domain.ErrNoAvailableSpot}
	repo := &stubGateEventRepo{}
	svc := newGateSvc(parking, repo, &stubDedup{})

	err := svc.Process(context.Background(), ports.GateEventInput{
		VehicleID: "ABCDEF",
		Direction: "entry",
		Selection: 1,
		Timestamp: time.Now(),
	})
	if !errors.Is(err, domain.ErrNoAvailableSpot) {
		t.Fatalf("expected ErrNoAvailableSpot, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("failed movement must not be audited as applied")
	}
}
