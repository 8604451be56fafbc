package repository

import (
	"fmt"
	"strconv"
	"time"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

type FileReservationRepository struct {
	store fileStore
}

func NewReservationRepository(path string, log logger.Logger, m *metrics.Metrics) *FileReservationRepository {
	return &FileReservationRepository{store: fileStore{path: path, entity: "reservation", log: log, m: m}}
}

func (r *FileReservationRepository) Load() ([]domain.Reservation, error) {
	rows, err := r.store.readRows()
	if err != nil {
		return nil, err
	}

	reservations := make([]domain.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := decodeReservation(row)
		if err != nil {
			r.store.skip(fmt.Sprint(row), err)
			continue
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

func (r *FileReservationRepository) Save(reservations []domain.Reservation) error {
	rows := make([][]string, 0, len(reservations))
	for _, res := range reservations {
		rows = append(rows, encodeReservation(res))
	}
	return r.store.writeRows(rows)
}

// Field order: id, passenger id, flight id, amount cents, created unix,
// departure unix, cancelled flag, deleted flag.
func encodeReservation(res domain.Reservation) []string {
	return []string{
		strconv.FormatInt(res.ID, 10),
		strconv.FormatInt(res.PassengerID, 10),
		strconv.FormatInt(res.FlightID, 10),
		strconv.FormatInt(int64(res.AmountPaid), 10),
		strconv.FormatInt(res.CreatedAt.Unix(), 10),
		strconv.FormatInt(res.DepartureTime.Unix(), 10),
		encodeFlag(res.Cancelled),
		encodeFlag(res.Deleted),
	}
}

func decodeReservation(row []string) (domain.Reservation, error) {
	if len(row) != 8 {
		return domain.Reservation{}, fmt.Errorf("expected 8 fields, got %d", len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation id: %w", err)
	}
	passengerID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("passenger id: %w", err)
	}
	flightID, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("flight id: %w", err)
	}
	amount, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("amount paid: %w", err)
	}
	created, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("created at: %w", err)
	}
	departure, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("departure time: %w", err)
	}
	cancelled, err := decodeFlag(row[6])
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("cancelled flag: %w", err)
	}
	deleted, err := decodeFlag(row[7])
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("deleted flag: %w", err)
	}

	return domain.Reservation{
		ID:            id,
		PassengerID:   passengerID,
		FlightID:      flightID,
		AmountPaid:    domain.Cents(amount),
		CreatedAt:     time.Unix(created, 0),
		DepartureTime: time.Unix(departure, 0),
		Cancelled:     cancelled,
		Deleted:       deleted,
	}, nil
}

var _ ReservationRepository = (*FileReservationRepository)(nil)
