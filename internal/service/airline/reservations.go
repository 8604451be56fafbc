package airline

import (
	"time"

	"github.com/antonvlasov/airline/internal/domain"
)

// RefundPolicy is the step function of time-to-departure that decides
// what fraction of the paid amount comes back on cancellation.
type RefundPolicy struct {
	// FullRefundWindow or more before departure refunds EarlyPercent.
	FullRefundWindow time.Duration
	// HalfRefundWindow or more (but less than FullRefundWindow)
	// refunds LatePercent. Below it no refund is allowed.
	HalfRefundWindow time.Duration
	EarlyPercent     int64
	LatePercent      int64
}

func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		FullRefundWindow: 48 * time.Hour,
		HalfRefundWindow: 24 * time.Hour,
		EarlyPercent:     90,
		LatePercent:      50,
	}
}

// RefundFor computes the refund without touching any state. The exact
// window boundaries belong to the higher tier: at exactly 48h the 90%
// tier applies, at exactly 24h the 50% tier applies.
func (p RefundPolicy) RefundFor(amount domain.Cents, departure, now time.Time) (domain.Cents, error) {
	if now.After(departure) {
		return 0, domain.ErrFlightCompleted
	}
	remaining := departure.Sub(now)
	switch {
	case remaining >= p.FullRefundWindow:
		return amount.Percent(p.EarlyPercent), nil
	case remaining >= p.HalfRefundWindow:
		return amount.Percent(p.LatePercent), nil
	}
	return 0, domain.ErrRefundNotAllowed
}

// Reserve books a seat on the flight for the passenger and returns the
// reservation id. Wallet debit, seat decrement and the new reservation
// land together or not at all: every precondition is checked before
// the first mutation.
func (s *Service) Reserve(passengerID, flightID int64) (int64, error) {
	p := s.findPassenger(passengerID)
	if p == nil {
		return 0, domain.ErrPassengerNotFound
	}
	f := s.findFlight(flightID)
	if f == nil {
		return 0, domain.ErrFlightNotFound
	}
	if f.AvailableSeats <= 0 {
		return 0, domain.ErrFlightFull
	}
	if p.Wallet < f.Price {
		return 0, domain.ErrInsufficientBalance
	}

	p.Wallet -= f.Price
	f.AvailableSeats--

	id := s.nextReservationID
	s.nextReservationID++
	s.reservations = append(s.reservations, domain.Reservation{
		ID:            id,
		PassengerID:   passengerID,
		FlightID:      flightID,
		AmountPaid:    f.Price,
		CreatedAt:     s.now(),
		DepartureTime: f.DepartureTime,
	})

	if s.m != nil {
		s.m.ReservationsCreated.Inc()
	}
	s.log.Info("reservation created",
		"reservation_id", id, "passenger_id", passengerID, "flight_id", flightID,
		"amount", f.Price.String())

	s.markDirty()
	s.autoSave()
	return id, nil
}

// Cancel refunds a reservation by elapsed-time tier and releases its
// seat. The refund is computed before any mutation, so a rejected tier
// leaves wallet, seats and reservation untouched.
func (s *Service) Cancel(reservationID int64) (domain.Cents, error) {
	r := s.findReservation(reservationID)
	if r == nil {
		return 0, domain.ErrReservationNotFound
	}
	if r.Cancelled {
		return 0, domain.ErrAlreadyCancelled
	}

	// Defensive: soft deletion is blocked while reservations are
	// active, so both must still resolve.
	f := s.findFlight(r.FlightID)
	if f == nil {
		return 0, domain.ErrFlightNotFound
	}
	p := s.findPassenger(r.PassengerID)
	if p == nil {
		return 0, domain.ErrPassengerNotFound
	}

	refund, err := s.refund.RefundFor(r.AmountPaid, r.DepartureTime, s.now())
	if err != nil {
		return 0, err
	}

	p.Wallet += refund
	if f.AvailableSeats < f.TotalSeats {
		f.AvailableSeats++
	}
	r.Cancelled = true

	if s.m != nil {
		s.m.ReservationsCancelled.Inc()
		s.m.RefundedCents.Add(float64(refund))
	}
	s.log.Info("reservation cancelled",
		"reservation_id", reservationID, "refund", refund.String())

	s.markDirty()
	s.autoSave()
	return refund, nil
}

func (s *Service) FindReservation(id int64) (domain.Reservation, error) {
	r := s.findReservation(id)
	if r == nil {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return *r, nil
}

func (s *Service) ListReservations() []domain.Reservation {
	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if !r.Deleted {
			out = append(out, r)
		}
	}
	return out
}

// PassengerReservations lists the non-deleted reservations of a
// passenger, cancelled ones included.
func (s *Service) PassengerReservations(passengerID int64) ([]domain.Reservation, error) {
	if s.findPassenger(passengerID) == nil {
		return nil, domain.ErrPassengerNotFound
	}
	var out []domain.Reservation
	for _, r := range s.reservations {
		if r.PassengerID == passengerID && !r.Deleted {
			out = append(out, r)
		}
	}
	return out, nil
}
