package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/parkit/parking-system/internal/core/domain"
)

func TestSpotAllocator_LowestIDWins(t *testing.T) {
	spots := newStubSpotRepo(
		domain.Spot{ID: 3, Category: domain.CategoryCar, Available: true},
		domain.Spot{ID: 1, Category: domain.CategoryCar, Available: true},
		domain.Spot{ID: 2, Category: domain.CategoryCar, Available: false},
	)
	alloc := NewSpotAllocator(spots, zerolog.Nop())

	spot, err := alloc.NextAvailable(context.Background(), domain.CategoryCar)
	if err != nil {
		t.Fatalf("NextAvailable returned error: %v", err)
	}
	if spot == nil || spot.ID != 1 {
		t.Fatalf("expected spot 1, got %+v", spot)
	}
}

func TestSpotAllocator_NoneFreeIsNotAnError(t *testing.T) {
	spots := newStubSpotRepo(
		domain.Spot{ID: 1, Category: domain.CategoryCar, Available: false},
		domain.Spot{ID: 4, Category: domain.CategoryBike, Available: true},
	)
	alloc := NewSpotAllocator(spots, zerolog.Nop())

	spot, err := alloc.NextAvailable(context.Background(), domain.CategoryCar)
	if err != nil {
		t.Fatalf("expected no error when full, got %v", err)
	}
	if spot != nil {
		t.Fatalf("expected nil spot when full, got %+v", spot)
	}
}

func TestSpotAllocator_DoesNotReserve(t *testing.T) {
	spots := newStubSpotRepo(domain.Spot{ID: 1, Category: domain.CategoryBike, Available: true})
	alloc := NewSpotAllocator(spots, zerolog.Nop())

	if _, err := alloc.NextAvailable(context.Background(), domain.CategoryBike); err != nil {
		t.Fatalf("NextAvailable returned error: %v", err)
	}
	if len(spots.setCalls) != 0 {
		t.Fatalf("allocator must never mutate availability")
	}
}

func TestSpotAllocator_StoreError(t *testing.T) {
	spots := newStubSpotRepo()
	spots.findErr = errors.New("store down")
	alloc := NewSpotAllocator(spots, zerolog.Nop())

	if _, err := alloc.NextAvailable(context.Background(), domain.CategoryCar); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
