package domain

import "strings"

// VehicleCategory is the class of a vehicle, which determines the hourly
// rate and the kind of spot it can occupy.
type VehicleCategory string

const (
	CategoryCar  VehicleCategory = "CAR"
	CategoryBike VehicleCategory = "BIKE"
)

// ParseVehicleCategory resolves a caller-supplied category string.
// The set is closed: anything other than CAR or BIKE is rejected.
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch VehicleCategory(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryCar:
		return CategoryCar, nil
	case CategoryBike:
		return CategoryBike, nil
	default:
		return "", ErrInvalidSelection
	}
}

// CategoryFromSelection maps the numeric menu selection used by gate
// terminals (1 = car, 2 = bike) to a category.
func CategoryFromSelection(selection int) (VehicleCategory, error) {
	switch selection {
	case 1:
		return CategoryCar, nil
	case 2:
		return CategoryBike, nil
	default:
		return "", ErrInvalidSelection
	}
}
