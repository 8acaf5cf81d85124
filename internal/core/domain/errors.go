package domain

import "errors"

var (
	// ErrInvalidSelection means the caller supplied a category outside the
	// closed CAR/BIKE set.
	ErrInvalidSelection = errors.New("invalid vehicle category selection")

	// ErrInvalidVehicleID means the registration string was empty.
	ErrInvalidVehicleID = errors.New("vehicle registration must not be empty")

	// ErrNoAvailableSpot means the facility has no free spot of the
	// requested category. Expected capacity exhaustion, not a fault.
	ErrNoAvailableSpot = errors.New("no available spot for category")

	// ErrVehicleAlreadyParked means an entry was requested for a vehicle
	// that already has an open session.
	ErrVehicleAlreadyParked = errors.New("vehicle is already parked")

	// ErrNoOpenSession means an exit was requested for a vehicle that is
	// not currently parked.
	ErrNoOpenSession = errors.New("no open session for vehicle")

	// ErrInvalidDuration means the exit time precedes the entry time.
	ErrInvalidDuration = errors.New("exit time precedes entry time")

	// ErrUnknownVehicleType means a fare was requested for a category the
	// calculator has no rate for.
	ErrUnknownVehicleType = errors.New("unknown vehicle type")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
)
