package domain

import "time"

type Flight struct {
	ID             int64
	Number         string
	Origin         string
	Destination    string
	DepartureTime  time.Time
	TotalSeats     int
	AvailableSeats int
	Price          Cents
	Deleted        bool
}

// Completed reports whether the flight departed before the given instant.
func (f Flight) Completed(now time.Time) bool {
	return f.DepartureTime.Before(now)
}
