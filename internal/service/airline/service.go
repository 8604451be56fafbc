package airline

import (
	"fmt"
	"time"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/internal/repository"
	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

// Service owns the three in-memory collections for the process
// lifetime and couples them through reservation transitions. Callers
// are single-threaded; every operation runs to completion before the
// next one starts.
type Service struct {
	passengerRepo   repository.PassengerRepository
	flightRepo      repository.FlightRepository
	reservationRepo repository.ReservationRepository

	passengers   []domain.Passenger
	flights      []domain.Flight
	reservations []domain.Reservation

	nextPassengerID   int64
	nextFlightID      int64
	nextReservationID int64

	refund RefundPolicy
	log    logger.Logger
	m      *metrics.Metrics
	now    func() time.Time
	dirty  bool
}

type Option func(*Service)

// WithClock overrides the time source. Used by tests to pin refund
// tier evaluation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.m = m
	}
}

func NewService(
	passengers repository.PassengerRepository,
	flights repository.FlightRepository,
	reservations repository.ReservationRepository,
	refund RefundPolicy,
	log logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		passengerRepo:   passengers,
		flightRepo:      flights,
		reservationRepo: reservations,
		refund:          refund,
		log:             log,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the collections from storage and recovers the next-id
// allocator for each entity type as max(persisted id)+1.
func (s *Service) Load() error {
	passengers, err := s.passengerRepo.Load()
	if err != nil {
		return fmt.Errorf("load passengers: %w", err)
	}
	flights, err := s.flightRepo.Load()
	if err != nil {
		return fmt.Errorf("load flights: %w", err)
	}
	reservations, err := s.reservationRepo.Load()
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}

	s.passengers = passengers
	s.flights = flights
	s.reservations = reservations

	s.nextPassengerID = 1
	for _, p := range s.passengers {
		if p.ID >= s.nextPassengerID {
			s.nextPassengerID = p.ID + 1
		}
	}
	s.nextFlightID = 1
	for _, f := range s.flights {
		if f.ID >= s.nextFlightID {
			s.nextFlightID = f.ID + 1
		}
	}
	s.nextReservationID = 1
	for _, r := range s.reservations {
		if r.ID >= s.nextReservationID {
			s.nextReservationID = r.ID + 1
		}
	}

	s.dirty = false
	return nil
}

// Flush rewrites all three collections to storage.
func (s *Service) Flush() error {
	if err := s.passengerRepo.Save(s.passengers); err != nil {
		return fmt.Errorf("flush passengers: %w", err)
	}
	if err := s.flightRepo.Save(s.flights); err != nil {
		return fmt.Errorf("flush flights: %w", err)
	}
	if err := s.reservationRepo.Save(s.reservations); err != nil {
		return fmt.Errorf("flush reservations: %w", err)
	}
	s.dirty = false
	return nil
}

// autoSave flushes after a successful mutation. The mutation already
// took effect, so a flush failure is logged and suppressed; in-memory
// state stays authoritative for the running process.
func (s *Service) autoSave() {
	if !s.dirty {
		return
	}
	if err := s.Flush(); err != nil {
		s.log.Error("auto-save failed", "error", err)
		if s.m != nil {
			s.m.FlushFailures.Inc()
		}
	}
}

func (s *Service) markDirty() {
	s.dirty = true
}

// Deletion-opaque lookups. New transactions only ever see non-deleted
// records.

func (s *Service) findPassenger(id int64) *domain.Passenger {
	for i := range s.passengers {
		if s.passengers[i].ID == id && !s.passengers[i].Deleted {
			return &s.passengers[i]
		}
	}
	return nil
}

func (s *Service) findFlight(id int64) *domain.Flight {
	for i := range s.flights {
		if s.flights[i].ID == id && !s.flights[i].Deleted {
			return &s.flights[i]
		}
	}
	return nil
}

func (s *Service) findReservation(id int64) *domain.Reservation {
	for i := range s.reservations {
		if s.reservations[i].ID == id && !s.reservations[i].Deleted {
			return &s.reservations[i]
		}
	}
	return nil
}

// Deletion-transparent lookups, reserved for report rendering so that
// historical reservations still resolve their passenger and flight.

func (s *Service) findPassengerAny(id int64) *domain.Passenger {
	for i := range s.passengers {
		if s.passengers[i].ID == id {
			return &s.passengers[i]
		}
	}
	return nil
}

func (s *Service) findFlightAny(id int64) *domain.Flight {
	for i := range s.flights {
		if s.flights[i].ID == id {
			return &s.flights[i]
		}
	}
	return nil
}
