package service

import (
	"testing"
	"time"

	"github.com/parkit/parking-system/internal/core/domain"
)

const (
	testCarRate  = 1.5
	testBikeRate = 1.0
)

func ticketWithDuration(category domain.VehicleCategory, d time.Duration) domain.Ticket {
	entry := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return domain.Ticket{
		Spot:      domain.Spot{ID: 1, Category: category},
		VehicleID: "ABCDEF",
		EntryTime: entry,
	}.WithExit(entry.Add(d))
}

func newTestCalculator() *FareCalculator {
	return NewFareCalculator(testCarRate, testBikeRate)
}

func TestFareCalculator_CarOneHour(t *testing.T) {
	price, err := newTestCalculator().Calculate(ticketWithDuration(domain.CategoryCar, time.Hour), false)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if price != testCarRate {
		t.Fatalf("expected %v, got %v", testCarRate, price)
	}
}

func TestFareCalculator_BikeOneHour(t *testing.T) {
	price, err := newTestCalculator().Calculate(ticketWithDuration(domain.CategoryBike, time.Hour), false)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if price != testBikeRate {
		t.Fatalf("expected %v, got %v", testBikeRate, price)
	}
}

func TestFareCalculator_FortyFiveMinutes(t *testing.T) {
	cases := []struct {
		name     string
		category domain.VehicleCategory
		want     float64
	}{
		{"car", domain.CategoryCar, roundPrice(0.75 * testCarRate)},
		{"bike", domain.CategoryBike, roundPrice(0.75 * testBikeRate)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := newTestCalculator().Calculate(ticketWithDuration(tc.category, 45*time.Minute), false)
			if err != nil {
				t.Fatalf("Calculate returned error: %v", err)
			}
			if price != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, price)
			}
		})
	}
}

func TestFareCalculator_TwentyFourHours(t *testing.T) {
	price, err := newTestCalculator().Calculate(ticketWithDuration(domain.CategoryCar, 24*time.Hour), false)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if want := roundPrice(24 * testCarRate); price != want {
		t.Fatalf("expected %v, got %v", want, price)
	}
}

func TestFareCalculator_UnderHalfHourIsFree(t *testing.T) {
	for _, category := range []domain.VehicleCategory{domain.CategoryCar, domain.CategoryBike} {
		for _, discount := range []bool{false, true} {
			price, err := newTestCalculator().Calculate(ticketWithDuration(category, 29*time.Minute), discount)
			if err != nil {
				t.Fatalf("Calculate returned error: %v", err)
			}
			if price != 0 {
				t.Fatalf("%s discount=%v: expected free parking, got %v", category, discount, price)
			}
		}
	}
}

func TestFareCalculator_CarWithDiscount(t *testing.T) {
	price, err := newTestCalculator().Calculate(ticketWithDuration(domain.CategoryCar, time.Hour), true)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	// 5% off the rounded base, then re-rounded.
	want := roundPrice(testCarRate - testCarRate*0.05)
	if price != want {
		t.Fatalf("expected %v, got %v", want, price)
	}
}

func TestFareCalculator_BikeWithDiscount(t *testing.T) {
	price, err := newTestCalculator().Calculate(ticketWithDuration(domain.CategoryBike, time.Hour), true)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if want := 0.95; price != want {
		t.Fatalf("expected %v, got %v", want, price)
	}
}

func TestFareCalculator_DiscountIsStrictlyCheaper(t *testing.T) {
	calc := newTestCalculator()
	full, err := calc.Calculate(ticketWithDuration(domain.CategoryCar, 3*time.Hour), false)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	reduced, err := calc.Calculate(ticketWithDuration(domain.CategoryCar, 3*time.Hour), true)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if reduced >= full {
		t.Fatalf("expected discounted price %v < full price %v", reduced, full)
	}
}

func TestFareCalculator_ExitBeforeEntry(t *testing.T) {
	entry := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{
		Spot:      domain.Spot{ID: 1, Category: domain.CategoryCar},
		VehicleID: "ABCDEF",
		EntryTime: entry,
	}.WithExit(entry.Add(-time.Hour))

	if _, err := newTestCalculator().Calculate(ticket, false); err != domain.ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestFareCalculator_MissingExitTime(t *testing.T) {
	ticket := domain.Ticket{
		Spot:      domain.Spot{ID: 1, Category: domain.CategoryCar},
		VehicleID: "ABCDEF",
		EntryTime: time.Now(),
	}
	if _, err := newTestCalculator().Calculate(ticket, false); err != domain.ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestFareCalculator_UnknownCategory(t *testing.T) {
	ticket := ticketWithDuration("TRUCK", time.Hour)
	if _, err := newTestCalculator().Calculate(ticket, false); err != domain.ErrUnknownVehicleType {
		t.Fatalf("expected ErrUnknownVehicleType, got %v", err)
	}
}

func TestRoundPrice_HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.42526688, 1.43},
		{1.42626688, 1.43},
		{1.42426688, 1.42},
	}
	for _, tc := range cases {
		if got := roundPrice(tc.in); got != tc.want {
			t.Errorf("roundPrice(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
