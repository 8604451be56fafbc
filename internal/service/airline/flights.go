package airline

import (
	"errors"
	"strings"
	"time"

	"github.com/antonvlasov/airline/internal/domain"
)

// AddFlight registers a flight and returns its id. The seat count
// becomes both the capacity and the initial availability.
func (s *Service) AddFlight(number, origin, destination string, departure time.Time, seats int, price domain.Cents) (int64, error) {
	if number == "" {
		return 0, errors.New("flight number is required")
	}
	if origin == "" || destination == "" {
		return 0, errors.New("origin and destination are required")
	}
	if seats < 0 {
		return 0, errors.New("seat count must not be negative")
	}
	if price <= 0 {
		return 0, errors.New("ticket price must be positive")
	}

	id := s.nextFlightID
	s.nextFlightID++
	s.flights = append(s.flights, domain.Flight{
		ID:             id,
		Number:         number,
		Origin:         origin,
		Destination:    destination,
		DepartureTime:  departure,
		TotalSeats:     seats,
		AvailableSeats: seats,
		Price:          price,
	})

	s.markDirty()
	s.autoSave()
	return id, nil
}

// DeleteFlight soft-deletes a flight. Blocked while any non-cancelled
// reservation still references the id.
func (s *Service) DeleteFlight(id int64) error {
	f := s.findFlight(id)
	if f == nil {
		return domain.ErrFlightNotFound
	}
	for _, r := range s.reservations {
		if r.FlightID == id && r.Active() {
			return domain.ErrHasActiveReservations
		}
	}

	f.Deleted = true
	s.markDirty()
	s.autoSave()
	return nil
}

func (s *Service) FindFlight(id int64) (domain.Flight, error) {
	f := s.findFlight(id)
	if f == nil {
		return domain.Flight{}, domain.ErrFlightNotFound
	}
	return *f, nil
}

func (s *Service) ListFlights() []domain.Flight {
	out := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		if !f.Deleted {
			out = append(out, f)
		}
	}
	return out
}

// SearchFlights matches the term against flight number, origin and
// destination of non-deleted flights.
func (s *Service) SearchFlights(term string) []domain.Flight {
	var out []domain.Flight
	for _, f := range s.flights {
		if f.Deleted {
			continue
		}
		if strings.Contains(f.Number, term) ||
			strings.Contains(f.Origin, term) ||
			strings.Contains(f.Destination, term) {
			out = append(out, f)
		}
	}
	return out
}
