package service

import (
	"math"

	"github.com/parkit/parking-system/internal/core/domain"
)

const (
	// freeHours is the grace window: stays shorter than half an hour are free.
	freeHours = 0.5
	// discountPercent is the loyalty reduction for returning vehicles.
	discountPercent = 5
)

// FareCalculator computes the price of a completed parking session. It is a
// pure function of the ticket's duration, category, and discount flag.
type FareCalculator struct {
	carRatePerHour  float64
	bikeRatePerHour float64
}

func NewFareCalculator(carRatePerHour, bikeRatePerHour float64) *FareCalculator {
	return &FareCalculator{
		carRatePerHour:  carRatePerHour,
		bikeRatePerHour: bikeRatePerHour,
	}
}

// Calculate returns the fare for the ticket. The ticket must have an exit
// time that does not precede its entry time, otherwise ErrInvalidDuration.
// When applyDiscount is true, a 5% reduction is applied to the rounded base
// price and the result is rounded again.
func (f *FareCalculator) Calculate(t domain.Ticket, applyDiscount bool) (float64, error) {
	if t.ExitTime == nil || t.ExitTime.Before(t.EntryTime) {
		return 0, domain.ErrInvalidDuration
	}

	hours := t.ExitTime.Sub(t.EntryTime).Hours()
	if hours < freeHours {
		return 0, nil
	}

	var price float64
	switch t.Spot.Category {
	case domain.CategoryCar:
		price = roundPrice(hours * f.carRatePerHour)
	case domain.CategoryBike:
		price = roundPrice(hours * f.bikeRatePerHour)
	default:
		return 0, domain.ErrUnknownVehicleType
	}

	if applyDiscount {
		// The discount is taken from the already-rounded base price, then
		// the result is rounded again.
		price = roundPrice(price - price*(discountPercent/100.0))
	}

	return price, nil
}

// roundPrice rounds to 2 decimals, half-up: a trailing 5 always rounds away
// from zero (0.005 becomes 0.01), unlike math.RoundToEven.
func roundPrice(price float64) float64 {
	return math.Floor(price*100+0.5) / 100
}
