package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonvlasov/airline/internal/repository"
	"github.com/antonvlasov/airline/internal/service/airline"
	"github.com/antonvlasov/airline/internal/validation"
	"github.com/antonvlasov/airline/pkg/logger"
)

func newTestMenu(t *testing.T, input string) (*Menu, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	log := logger.NewNop()
	svc := airline.NewService(
		repository.NewPassengerRepository(filepath.Join(dir, "passengers.csv"), log, nil),
		repository.NewFlightRepository(filepath.Join(dir, "flights.csv"), log, nil),
		repository.NewReservationRepository(filepath.Join(dir, "reservations.csv"), log, nil),
		airline.DefaultRefundPolicy(), log)
	require.NoError(t, svc.Load())

	var out bytes.Buffer
	return New(svc, strings.NewReader(input), &out, log), &out
}

func TestMenu_FullSession(t *testing.T) {
	departure := time.Now().Add(72 * time.Hour).Format(validation.DateTimeLayout)
	input := strings.Join([]string{
		"1", "John Doe", "AB123456", "1234567890", "USA", "1000",
		"2", "AB123", "New York", "London", departure, "5", "500",
		"3", "1", "1",
		"7",
		"4", "1",
		"0",
	}, "\n") + "\n"

	m, out := newTestMenu(t, input)
	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Passenger added with id 1")
	assert.Contains(t, got, "Flight added with id 1")
	assert.Contains(t, got, "Reservation created with id 1")
	assert.Contains(t, got, "paid 500.00")
	assert.Contains(t, got, "Reservation cancelled, refunded 450.00")
	assert.Contains(t, got, "Goodbye!")
}

func TestMenu_InvalidChoiceAndEOF(t *testing.T) {
	m, out := newTestMenu(t, "99\n")
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid choice. Try again.")
}

func TestMenu_RejectsBadNationalID(t *testing.T) {
	input := strings.Join([]string{
		"1", "John Doe", "AB123456", "12345", "USA", "1000",
		"0",
	}, "\n") + "\n"

	m, out := newTestMenu(t, input)
	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "national id must be exactly 10 digits")
	assert.NotContains(t, got, "Passenger added")
}

func TestMenu_RejectsBadFlightNumber(t *testing.T) {
	input := "2\n12345\n0\n"

	m, out := newTestMenu(t, input)
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "flight number must be 2 letters followed by 3-4 digits")
}

func TestMenu_ServiceErrorsAreReported(t *testing.T) {
	departure := time.Now().Add(72 * time.Hour).Format(validation.DateTimeLayout)
	input := strings.Join([]string{
		"1", "John Doe", "AB123456", "1234567890", "USA", "100",
		"2", "AB123", "New York", "London", departure, "5", "500",
		"3", "1", "1",
		"0",
	}, "\n") + "\n"

	m, out := newTestMenu(t, input)
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "insufficient wallet balance")
}

func TestMenu_ReportsWriteFiles(t *testing.T) {
	// Reports land in the working directory, which for tests must be
	// somewhere disposable.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	departure := time.Now().Add(72 * time.Hour).Format(validation.DateTimeLayout)
	input := strings.Join([]string{
		"1", "John Doe", "AB123456", "1234567890", "USA", "1000",
		"2", "AB123", "New York", "London", departure, "5", "500",
		"3", "1", "1",
		"13", "1",
		"0",
	}, "\n") + "\n"

	m, out := newTestMenu(t, input)
	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Report written to reservations_report.txt")
}
