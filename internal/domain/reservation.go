package domain

import "time"

type Reservation struct {
	ID          int64
	PassengerID int64
	FlightID    int64
	// AmountPaid is the ticket price at booking time; later price
	// changes on the flight do not affect it.
	AmountPaid Cents
	CreatedAt  time.Time
	// DepartureTime is a copy of the flight's departure at booking
	// time so refund tiers stay stable if the flight is edited.
	DepartureTime time.Time
	Cancelled     bool
	Deleted       bool
}

// Active reports whether the reservation still holds a seat.
func (r Reservation) Active() bool {
	return !r.Cancelled && !r.Deleted
}
