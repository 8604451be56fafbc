package repository

import "github.com/antonvlasov/airline/internal/domain"

// Repositories load and flush whole collections. They never own the
// in-memory state; the service does.

type PassengerRepository interface {
	Load() ([]domain.Passenger, error)
	Save(passengers []domain.Passenger) error
}

type FlightRepository interface {
	Load() ([]domain.Flight, error)
	Save(flights []domain.Flight) error
}

type ReservationRepository interface {
	Load() ([]domain.Reservation, error)
	Save(reservations []domain.Reservation) error
}
