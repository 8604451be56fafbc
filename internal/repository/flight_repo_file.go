package repository

import (
	"fmt"
	"strconv"
	"time"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

type FileFlightRepository struct {
	store fileStore
}

func NewFlightRepository(path string, log logger.Logger, m *metrics.Metrics) *FileFlightRepository {
	return &FileFlightRepository{store: fileStore{path: path, entity: "flight", log: log, m: m}}
}

func (r *FileFlightRepository) Load() ([]domain.Flight, error) {
	rows, err := r.store.readRows()
	if err != nil {
		return nil, err
	}

	flights := make([]domain.Flight, 0, len(rows))
	for _, row := range rows {
		f, err := decodeFlight(row)
		if err != nil {
			r.store.skip(fmt.Sprint(row), err)
			continue
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func (r *FileFlightRepository) Save(flights []domain.Flight) error {
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, encodeFlight(f))
	}
	return r.store.writeRows(rows)
}

// Field order: id, number, origin, destination, departure unix, total
// seats, available seats, price cents, deleted flag.
func encodeFlight(f domain.Flight) []string {
	return []string{
		strconv.FormatInt(f.ID, 10),
		f.Number,
		f.Origin,
		f.Destination,
		strconv.FormatInt(f.DepartureTime.Unix(), 10),
		strconv.Itoa(f.TotalSeats),
		strconv.Itoa(f.AvailableSeats),
		strconv.FormatInt(int64(f.Price), 10),
		encodeFlag(f.Deleted),
	}
}

func decodeFlight(row []string) (domain.Flight, error) {
	if len(row) != 9 {
		return domain.Flight{}, fmt.Errorf("expected 9 fields, got %d", len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("flight id: %w", err)
	}
	departure, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("departure time: %w", err)
	}
	total, err := strconv.Atoi(row[5])
	if err != nil {
		return domain.Flight{}, fmt.Errorf("total seats: %w", err)
	}
	available, err := strconv.Atoi(row[6])
	if err != nil {
		return domain.Flight{}, fmt.Errorf("available seats: %w", err)
	}
	price, err := strconv.ParseInt(row[7], 10, 64)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("price: %w", err)
	}
	deleted, err := decodeFlag(row[8])
	if err != nil {
		return domain.Flight{}, fmt.Errorf("deleted flag: %w", err)
	}

	return domain.Flight{
		ID:             id,
		Number:         row[1],
		Origin:         row[2],
		Destination:    row[3],
		DepartureTime:  time.Unix(departure, 0),
		TotalSeats:     total,
		AvailableSeats: available,
		Price:          domain.Cents(price),
		Deleted:        deleted,
	}, nil
}

var _ FlightRepository = (*FileFlightRepository)(nil)
