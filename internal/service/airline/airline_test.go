package airline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/airline/internal/domain"
	"github.com/antonvlasov/airline/internal/repository"
	"github.com/antonvlasov/airline/pkg/logger"
)

// newTestService builds a service over file repositories in a temp
// dir, with a controllable clock. Advance time by assigning through
// the returned pointer.
func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	return newTestServiceAt(t, t.TempDir())
}

func newTestServiceAt(t *testing.T, dir string) (*Service, *time.Time) {
	t.Helper()

	log := logger.NewNop()
	passengerRepo := repository.NewPassengerRepository(filepath.Join(dir, "passengers.csv"), log, nil)
	flightRepo := repository.NewFlightRepository(filepath.Join(dir, "flights.csv"), log, nil)
	reservationRepo := repository.NewReservationRepository(filepath.Join(dir, "reservations.csv"), log, nil)

	now := time.Now().Truncate(time.Second)
	clock := &now
	svc := NewService(passengerRepo, flightRepo, reservationRepo, DefaultRefundPolicy(), log,
		WithClock(func() time.Time { return *clock }))
	require.NoError(t, svc.Load())
	return svc, clock
}

func addTestPassenger(t *testing.T, svc *Service, wallet domain.Cents) int64 {
	t.Helper()
	id, err := svc.AddPassenger("John Doe", "AB123456", "1234567890", "USA", wallet)
	require.NoError(t, err)
	return id
}

func addTestFlight(t *testing.T, svc *Service, departure time.Time, seats int, price domain.Cents) int64 {
	t.Helper()
	id, err := svc.AddFlight("AB123", "New York", "London", departure, seats, price)
	require.NoError(t, err)
	return id
}
