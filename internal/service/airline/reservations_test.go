package airline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/airline/internal/domain"
)

// Wallet 1000, price 500, departure 72h out: reserve succeeds, then an
// immediate cancel refunds 90%.
func TestService_ReserveAndCancel_EarlyTier(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 100000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 10, 50000)

	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)

	p, err := svc.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(50000), p.Wallet)

	f, err := svc.FindFlight(flightID)
	require.NoError(t, err)
	assert.Equal(t, 9, f.AvailableSeats)

	r, err := svc.FindReservation(reservationID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(50000), r.AmountPaid)
	assert.True(t, r.DepartureTime.Equal(f.DepartureTime))
	assert.False(t, r.Cancelled)

	refund, err := svc.Cancel(reservationID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(45000), refund)

	p, err = svc.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(95000), p.Wallet)

	f, err = svc.FindFlight(flightID)
	require.NoError(t, err)
	assert.Equal(t, 10, f.AvailableSeats)

	r, err = svc.FindReservation(reservationID)
	require.NoError(t, err)
	assert.True(t, r.Cancelled)
}

// Departure 12h out: cancellation is rejected and the post-reservation
// state stays exactly as it was.
func TestService_Cancel_RefundNotAllowed(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 100000)
	flightID := addTestFlight(t, svc, clock.Add(12*time.Hour), 10, 50000)

	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)

	_, err = svc.Cancel(reservationID)
	require.ErrorIs(t, err, domain.ErrRefundNotAllowed)

	p, err := svc.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(50000), p.Wallet)

	f, err := svc.FindFlight(flightID)
	require.NoError(t, err)
	assert.Equal(t, 9, f.AvailableSeats)

	r, err := svc.FindReservation(reservationID)
	require.NoError(t, err)
	assert.False(t, r.Cancelled)
}

func TestService_Reserve_FlightFull(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 10000000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 0, 50000)

	_, err := svc.Reserve(passengerID, flightID)
	require.ErrorIs(t, err, domain.ErrFlightFull)

	p, err := svc.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(10000000), p.Wallet, "a full flight must not touch the wallet")
	assert.Empty(t, svc.ListReservations())
}

func TestService_Reserve_FailuresLeaveStateUntouched(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 20000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 5, 50000)

	testCases := []struct {
		name        string
		passengerID int64
		flightID    int64
		wantErr     error
	}{
		{"unknown passenger", 999, flightID, domain.ErrPassengerNotFound},
		{"unknown flight", passengerID, 999, domain.ErrFlightNotFound},
		{"insufficient balance", passengerID, flightID, domain.ErrInsufficientBalance},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reserve(tc.passengerID, tc.flightID)
			require.ErrorIs(t, err, tc.wantErr)

			p, err := svc.FindPassenger(passengerID)
			require.NoError(t, err)
			assert.Equal(t, domain.Cents(20000), p.Wallet)

			f, err := svc.FindFlight(flightID)
			require.NoError(t, err)
			assert.Equal(t, 5, f.AvailableSeats)
			assert.Empty(t, svc.ListReservations())
		})
	}
}

func TestService_Reserve_ChecksPassengerBeforeFlight(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Reserve(1, 1)
	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)
}

func TestService_Cancel_TierBoundaries(t *testing.T) {
	testCases := []struct {
		name       string
		toDepart   time.Duration
		wantRefund domain.Cents
		wantErr    error
	}{
		{"well before", 72 * time.Hour, 45000, nil},
		{"exactly 48h", 48 * time.Hour, 45000, nil},
		{"just under 48h", 48*time.Hour - time.Second, 25000, nil},
		{"exactly 24h", 24 * time.Hour, 25000, nil},
		{"just under 24h", 24*time.Hour - time.Second, 0, domain.ErrRefundNotAllowed},
		{"at departure", 0, 0, domain.ErrRefundNotAllowed},
		{"after departure", -time.Second, 0, domain.ErrFlightCompleted},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, clock := newTestService(t)
			passengerID := addTestPassenger(t, svc, 50000)
			flightID := addTestFlight(t, svc, clock.Add(96*time.Hour), 1, 50000)
			reservationID, err := svc.Reserve(passengerID, flightID)
			require.NoError(t, err)

			*clock = clock.Add(96*time.Hour - tc.toDepart)

			refund, err := svc.Cancel(reservationID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRefund, refund)
		})
	}
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 50000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 1, 50000)
	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)

	_, err = svc.Cancel(reservationID)
	require.NoError(t, err)

	_, err = svc.Cancel(reservationID)
	require.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	// The first refund must not be paid twice.
	p, err := svc.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(45000), p.Wallet)
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Cancel(42)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

// A cancellation never pushes availability above the flight's
// capacity, even if the stored counters already disagree.
func TestService_Cancel_SeatRestoreCappedAtCapacity(t *testing.T) {
	dir := t.TempDir()
	svc, clock := newTestServiceAt(t, dir)
	passengerID := addTestPassenger(t, svc, 50000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 3, 50000)
	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)

	// Hand the flight back its seat out of band, as a damaged data
	// file could.
	f := svc.findFlight(flightID)
	f.AvailableSeats = 3

	refund, err := svc.Cancel(reservationID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(45000), refund)

	got, err := svc.FindFlight(flightID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AvailableSeats)
}

func TestService_NextIDsRecoveredAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	svc, clock := newTestServiceAt(t, dir)
	passengerID := addTestPassenger(t, svc, 100000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 5, 50000)
	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reservationID)
	require.NoError(t, svc.Flush())

	restarted, _ := newTestServiceAt(t, dir)

	newPassengerID, err := restarted.AddPassenger("Jane Doe", "CD789012", "0987654321", "UK", 100000)
	require.NoError(t, err)
	assert.Equal(t, passengerID+1, newPassengerID)

	newFlightID, err := restarted.AddFlight("CD987", "Paris", "Rome", clock.Add(96*time.Hour), 2, 10000)
	require.NoError(t, err)
	assert.Equal(t, flightID+1, newFlightID)

	newReservationID, err := restarted.Reserve(newPassengerID, newFlightID)
	require.NoError(t, err)
	assert.Equal(t, reservationID+1, newReservationID)
}

func TestService_StateSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	svc, clock := newTestServiceAt(t, dir)
	passengerID := addTestPassenger(t, svc, 100000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 10, 50000)
	reservationID, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)

	restarted, _ := newTestServiceAt(t, dir)

	p, err := restarted.FindPassenger(passengerID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(50000), p.Wallet)

	f, err := restarted.FindFlight(flightID)
	require.NoError(t, err)
	assert.Equal(t, 9, f.AvailableSeats)
	assert.Equal(t, 10, f.TotalSeats)

	r, err := restarted.FindReservation(reservationID)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(50000), r.AmountPaid)
}

func TestService_PassengerReservations(t *testing.T) {
	svc, clock := newTestService(t)
	passengerID := addTestPassenger(t, svc, 200000)
	flightID := addTestFlight(t, svc, clock.Add(72*time.Hour), 5, 50000)

	first, err := svc.Reserve(passengerID, flightID)
	require.NoError(t, err)
	_, err = svc.Reserve(passengerID, flightID)
	require.NoError(t, err)
	_, err = svc.Cancel(first)
	require.NoError(t, err)

	got, err := svc.PassengerReservations(passengerID)
	require.NoError(t, err)
	require.Len(t, got, 2, "cancelled reservations stay listed")
	assert.True(t, got[0].Cancelled)
	assert.False(t, got[1].Cancelled)

	_, err = svc.PassengerReservations(999)
	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)
}
