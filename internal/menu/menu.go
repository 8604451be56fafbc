package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/internal/service/airline"
	"github.com/antonvlasov/airline/internal/validation"
	"github.com/antonvlasov/airline/pkg/logger"
)

// Menu is the interactive text interface over the reservation service.
// Each action runs to completion before the prompt returns.
type Menu struct {
	service *airline.Service
	in      *bufio.Scanner
	out     io.Writer
	log     logger.Logger
	now     func() time.Time
}

func New(service *airline.Service, in io.Reader, out io.Writer, log logger.Logger) *Menu {
	return &Menu{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log,
		now:     time.Now,
	}
}

// Run loops until the user exits, input ends or the context is
// cancelled. State is flushed on the way out.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return m.service.Flush()
		}

		fmt.Fprint(m.out, `
===== Airline Reservation System =====
 1. Add passenger
 2. Add flight
 3. Make reservation
 4. Cancel reservation
 5. List passengers
 6. List flights
 7. List reservations
 8. Search passengers
 9. Search flights
10. Update passenger
11. Delete passenger
12. Delete flight
13. Reports
 0. Exit
Enter choice: `)

		choice, err := m.readLine()
		if err != nil {
			return m.service.Flush()
		}

		switch choice {
		case "1":
			err = m.addPassenger()
		case "2":
			err = m.addFlight()
		case "3":
			err = m.makeReservation()
		case "4":
			err = m.cancelReservation()
		case "5":
			m.listPassengers()
		case "6":
			m.listFlights()
		case "7":
			m.listReservations()
		case "8":
			err = m.searchPassengers()
		case "9":
			err = m.searchFlights()
		case "10":
			err = m.updatePassenger()
		case "11":
			err = m.deletePassenger()
		case "12":
			err = m.deleteFlight()
		case "13":
			err = m.reports()
		case "0":
			fmt.Fprintln(m.out, "Goodbye!")
			return m.service.Flush()
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}

		if errors.Is(err, io.EOF) {
			return m.service.Flush()
		}
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *Menu) addPassenger() error {
	name, err := m.prompt("Full name: ")
	if err != nil {
		return err
	}
	passport, err := m.prompt("Passport number: ")
	if err != nil {
		return err
	}
	if !validation.ValidPassportNumber(passport) {
		return errors.New("passport number must be 8-9 characters")
	}
	nationalID, err := m.prompt("National id: ")
	if err != nil {
		return err
	}
	if !validation.ValidNationalID(nationalID) {
		return errors.New("national id must be exactly 10 digits")
	}
	nationality, err := m.prompt("Nationality: ")
	if err != nil {
		return err
	}
	wallet, err := m.promptAmount("Wallet balance: ")
	if err != nil {
		return err
	}

	id, err := m.service.AddPassenger(name, passport, nationalID, nationality, wallet)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Passenger added with id %d\n", id)
	return nil
}

func (m *Menu) addFlight() error {
	number, err := m.prompt("Flight number (e.g. AB123): ")
	if err != nil {
		return err
	}
	if !validation.ValidFlightNumber(number) {
		return errors.New("flight number must be 2 letters followed by 3-4 digits")
	}
	origin, err := m.prompt("Origin: ")
	if err != nil {
		return err
	}
	destination, err := m.prompt("Destination: ")
	if err != nil {
		return err
	}
	departureRaw, err := m.prompt("Departure (e.g. 2026-05-20 14:00): ")
	if err != nil {
		return err
	}
	departure, err := validation.ParseFutureTime(departureRaw, m.now())
	if err != nil {
		return err
	}
	seats, err := m.promptInt("Seats: ")
	if err != nil {
		return err
	}
	price, err := m.promptAmount("Ticket price: ")
	if err != nil {
		return err
	}

	id, err := m.service.AddFlight(number, origin, destination, departure, int(seats), price)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Flight added with id %d\n", id)
	return nil
}

func (m *Menu) makeReservation() error {
	passengerID, err := m.promptInt("Passenger id: ")
	if err != nil {
		return err
	}
	flightID, err := m.promptInt("Flight id: ")
	if err != nil {
		return err
	}

	id, err := m.service.Reserve(passengerID, flightID)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Reservation created with id %d\n", id)
	return nil
}

func (m *Menu) cancelReservation() error {
	id, err := m.promptInt("Reservation id to cancel: ")
	if err != nil {
		return err
	}

	refund, err := m.service.Cancel(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Reservation cancelled, refunded %s\n", refund)
	return nil
}

func (m *Menu) listPassengers() {
	passengers := m.service.ListPassengers()
	if len(passengers) == 0 {
		fmt.Fprintln(m.out, "No passengers found.")
		return
	}
	for _, p := range passengers {
		fmt.Fprintf(m.out, "%d: %s, passport %s, national id %s, %s, wallet %s\n",
			p.ID, p.Name, p.PassportNumber, p.NationalID, p.Nationality, p.Wallet)
	}
}

func (m *Menu) listFlights() {
	flights := m.service.ListFlights()
	if len(flights) == 0 {
		fmt.Fprintln(m.out, "No flights found.")
		return
	}
	for _, f := range flights {
		fmt.Fprintf(m.out, "%d: %s %s -> %s, departs %s, seats %d/%d, price %s\n",
			f.ID, f.Number, f.Origin, f.Destination,
			f.DepartureTime.Format(validation.DateTimeLayout),
			f.AvailableSeats, f.TotalSeats, f.Price)
	}
}

func (m *Menu) listReservations() {
	reservations := m.service.ListReservations()
	if len(reservations) == 0 {
		fmt.Fprintln(m.out, "No reservations found.")
		return
	}
	for _, r := range reservations {
		status := "Active"
		if r.Cancelled {
			status = "Cancelled"
		}
		fmt.Fprintf(m.out, "%d: passenger %d, flight %d, paid %s, %s\n",
			r.ID, r.PassengerID, r.FlightID, r.AmountPaid, status)
	}
}

func (m *Menu) searchPassengers() error {
	term, err := m.prompt("Search term: ")
	if err != nil {
		return err
	}
	results := m.service.SearchPassengers(term)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No passengers found.")
		return nil
	}
	for _, p := range results {
		fmt.Fprintf(m.out, "%d: %s, passport %s, national id %s\n",
			p.ID, p.Name, p.PassportNumber, p.NationalID)
	}
	return nil
}

func (m *Menu) searchFlights() error {
	term, err := m.prompt("Search term: ")
	if err != nil {
		return err
	}
	results := m.service.SearchFlights(term)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No flights found.")
		return nil
	}
	for _, f := range results {
		fmt.Fprintf(m.out, "%d: %s %s -> %s, departs %s\n",
			f.ID, f.Number, f.Origin, f.Destination,
			f.DepartureTime.Format(validation.DateTimeLayout))
	}
	return nil
}

func (m *Menu) updatePassenger() error {
	id, err := m.promptInt("Passenger id: ")
	if err != nil {
		return err
	}
	name, err := m.prompt("New full name: ")
	if err != nil {
		return err
	}
	passport, err := m.prompt("New passport number: ")
	if err != nil {
		return err
	}
	if !validation.ValidPassportNumber(passport) {
		return errors.New("passport number must be 8-9 characters")
	}
	nationalID, err := m.prompt("New national id: ")
	if err != nil {
		return err
	}
	if !validation.ValidNationalID(nationalID) {
		return errors.New("national id must be exactly 10 digits")
	}
	nationality, err := m.prompt("New nationality: ")
	if err != nil {
		return err
	}

	if err := m.service.UpdatePassenger(id, name, passport, nationalID, nationality); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Passenger updated.")
	return nil
}

func (m *Menu) deletePassenger() error {
	id, err := m.promptInt("Passenger id to delete: ")
	if err != nil {
		return err
	}
	if err := m.service.DeletePassenger(id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Passenger deleted.")
	return nil
}

func (m *Menu) deleteFlight() error {
	id, err := m.promptInt("Flight id to delete: ")
	if err != nil {
		return err
	}
	if err := m.service.DeleteFlight(id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Flight deleted.")
	return nil
}

func (m *Menu) reports() error {
	fmt.Fprint(m.out, `
1. Reservations report
2. Flight passenger manifest
3. Future flights report
4. Passenger trips report
Enter choice: `)

	choice, err := m.readLine()
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return m.writeReport("reservations_report.txt", func(w io.Writer) error {
			return m.service.WriteReservationsReport(w, airline.ReservationFilter{})
		})
	case "2":
		id, err := m.promptInt("Flight id: ")
		if err != nil {
			return err
		}
		return m.writeReport(fmt.Sprintf("flight_manifest_%d.txt", id), func(w io.Writer) error {
			return m.service.WriteFlightManifest(w, id)
		})
	case "3":
		return m.writeReport("future_flights_report.txt", m.service.WriteFutureFlightsReport)
	case "4":
		id, err := m.promptInt("Passenger id: ")
		if err != nil {
			return err
		}
		return m.writeReport(fmt.Sprintf("passenger_trips_%d.txt", id), func(w io.Writer) error {
			return m.service.WritePassengerTripsReport(w, id, false, false)
		})
	}
	fmt.Fprintln(m.out, "Invalid choice.")
	return nil
}

func (m *Menu) writeReport(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	m.log.Info("report generated", "file", filename)
	fmt.Fprintf(m.out, "Report written to %s\n", filename)
	return nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

func (m *Menu) promptInt(label string) (int64, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("please enter a whole number")
	}
	return v, nil
}

func (m *Menu) promptAmount(label string) (domain.Cents, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return domain.ParseCents(raw)
}

func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}
