package airline

import (
	"fmt"
	"io"

	"github.com/antonvlasov/airline/internal/domain"
)

// Reports resolve passengers and flights through deletion-transparent
// lookups: a reservation's history must keep rendering after its
// passenger or flight was soft-deleted.

// ReservationFilter narrows the reservations report.
type ReservationFilter struct {
	FutureOnly    bool
	CompletedOnly bool
	RefundedOnly  bool
}

func (s *Service) WriteReservationsReport(w io.Writer, filter ReservationFilter) error {
	if _, err := fmt.Fprintln(w, "Reservation ID,Passenger Name,Flight Number,Date,Status,Amount"); err != nil {
		return err
	}

	now := s.now()
	for _, r := range s.reservations {
		if r.Deleted {
			continue
		}
		f := s.findFlightAny(r.FlightID)
		p := s.findPassengerAny(r.PassengerID)
		if f == nil || p == nil {
			continue
		}

		completed := f.Completed(now)
		if filter.FutureOnly && completed {
			continue
		}
		if filter.CompletedOnly && !completed {
			continue
		}
		if filter.RefundedOnly && !r.Cancelled {
			continue
		}

		status := "Future"
		if r.Cancelled {
			status = "Refunded"
		} else if completed {
			status = "Completed"
		}

		_, err := fmt.Fprintf(w, "%d,%s,%s,%s,%s,%s\n",
			r.ID, p.Name, f.Number, f.DepartureTime.Format("2006-01-02"), status, r.AmountPaid)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFlightManifest lists every passenger that ever held a seat on
// the flight, cancelled reservations included.
func (s *Service) WriteFlightManifest(w io.Writer, flightID int64) error {
	f := s.findFlight(flightID)
	if f == nil {
		return domain.ErrFlightNotFound
	}

	if _, err := fmt.Fprintf(w, "Flight: %s\n", f.Number); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Passenger ID,Name,Passport,Nationality,Status"); err != nil {
		return err
	}

	for _, r := range s.reservations {
		if r.Deleted || r.FlightID != flightID {
			continue
		}
		p := s.findPassengerAny(r.PassengerID)
		if p == nil {
			continue
		}

		status := "Confirmed"
		if r.Cancelled {
			status = "Cancelled"
		}
		_, err := fmt.Fprintf(w, "%d,%s,%s,%s,%s\n",
			p.ID, p.Name, p.PassportNumber, p.Nationality, status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) WriteFutureFlightsReport(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Flight Number,Origin,Destination,Date,Time,Available Seats,Price"); err != nil {
		return err
	}

	now := s.now()
	for _, f := range s.flights {
		if f.Deleted || !f.DepartureTime.After(now) {
			continue
		}
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d,%s\n",
			f.Number, f.Origin, f.Destination,
			f.DepartureTime.Format("2006-01-02"), f.DepartureTime.Format("15:04:05"),
			f.AvailableSeats, f.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) WritePassengerTripsReport(w io.Writer, passengerID int64, futureOnly, refundedOnly bool) error {
	p := s.findPassenger(passengerID)
	if p == nil {
		return domain.ErrPassengerNotFound
	}

	if _, err := fmt.Fprintf(w, "Passenger: %s\n", p.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Flight Number,Origin,Destination,Date,Status,Amount"); err != nil {
		return err
	}

	now := s.now()
	for _, r := range s.reservations {
		if r.Deleted || r.PassengerID != passengerID {
			continue
		}
		if refundedOnly && !r.Cancelled {
			continue
		}
		f := s.findFlightAny(r.FlightID)
		if f == nil {
			continue
		}

		completed := f.Completed(now)
		if futureOnly && completed {
			continue
		}

		status := "Future"
		if r.Cancelled {
			status = "Refunded"
		} else if completed {
			status = "Completed"
		}

		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s\n",
			f.Number, f.Origin, f.Destination,
			f.DepartureTime.Format("2006-01-02"), status, r.AmountPaid)
		if err != nil {
			return err
		}
	}
	return nil
}
