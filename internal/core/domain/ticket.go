package domain

import "time"

// Ticket is one parking occupancy record from entry to exit. The ID is
// assigned by the store on creation. ExitTime is nil while the vehicle is
// still parked; Price is meaningful only once ExitTime is set.
//
// Tickets are immutable values: lifecycle transitions return a new Ticket
// rather than mutating in place, and the store receives the new value
// explicitly on update.
type Ticket struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Spot      Spot       `json:"spot" bson:"spot"`
	VehicleID string     `json:"vehicle_id" bson:"vehicle_id"`
	EntryTime time.Time  `json:"entry_time" bson:"entry_time"`
	ExitTime  *time.Time `json:"exit_time,omitempty" bson:"exit_time,omitempty"`
	Price     float64    `json:"price" bson:"price"`
}

// Open reports whether the vehicle is still parked on this ticket.
func (t Ticket) Open() bool {
	return t.ExitTime == nil
}

// WithExit returns a copy of the ticket with the exit time set.
func (t Ticket) WithExit(exit time.Time) Ticket {
	e := exit
	t.ExitTime = &e
	return t
}

// WithPrice returns a copy of the ticket with the final price set.
func (t Ticket) WithPrice(price float64) Ticket {
	t.Price = price
	return t
}
