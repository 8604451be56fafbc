package repository

import (
	"fmt"
	"strconv"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/pkg/logger"
	"github.com/antonvlasov/airline/pkg/metrics"
)

type FilePassengerRepository struct {
	store fileStore
}

func NewPassengerRepository(path string, log logger.Logger, m *metrics.Metrics) *FilePassengerRepository {
	return &FilePassengerRepository{store: fileStore{path: path, entity: "passenger", log: log, m: m}}
}

func (r *FilePassengerRepository) Load() ([]domain.Passenger, error) {
	rows, err := r.store.readRows()
	if err != nil {
		return nil, err
	}

	passengers := make([]domain.Passenger, 0, len(rows))
	for _, row := range rows {
		p, err := decodePassenger(row)
		if err != nil {
			r.store.skip(fmt.Sprint(row), err)
			continue
		}
		passengers = append(passengers, p)
	}
	return passengers, nil
}

func (r *FilePassengerRepository) Save(passengers []domain.Passenger) error {
	rows := make([][]string, 0, len(passengers))
	for _, p := range passengers {
		rows = append(rows, encodePassenger(p))
	}
	return r.store.writeRows(rows)
}

// Field order: id, name, passport, national id, nationality, wallet
// cents, deleted flag.
func encodePassenger(p domain.Passenger) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.PassportNumber,
		p.NationalID,
		p.Nationality,
		strconv.FormatInt(int64(p.Wallet), 10),
		encodeFlag(p.Deleted),
	}
}

func decodePassenger(row []string) (domain.Passenger, error) {
	if len(row) != 7 {
		return domain.Passenger{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("passenger id: %w", err)
	}
	wallet, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("wallet: %w", err)
	}
	deleted, err := decodeFlag(row[6])
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("deleted flag: %w", err)
	}

	return domain.Passenger{
		ID:             id,
		Name:           row[1],
		PassportNumber: row[2],
		NationalID:     row[3],
		Nationality:    row[4],
		Wallet:         domain.Cents(wallet),
		Deleted:        deleted,
	}, nil
}

func encodeFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid flag %q", s)
}

var _ PassengerRepository = (*FilePassengerRepository)(nil)
