package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateTimeLayout is the entry format for departure times.
const DateTimeLayout = "2006-01-02 15:04"

var (
	nationalIDRe   = regexp.MustCompile(`^[0-9]{10}$`)
	flightNumberRe = regexp.MustCompile(`^[A-Za-z]{2}[0-9]{3,4}$`)
)

// ValidNationalID reports whether the value is exactly ten digits.
func ValidNationalID(s string) bool {
	return nationalIDRe.MatchString(s)
}

// ValidPassportNumber reports whether the value is 8 or 9 characters.
func ValidPassportNumber(s string) bool {
	return len(s) >= 8 && len(s) <= 9
}

// ValidFlightNumber reports whether the value is two letters followed
// by three or four digits, e.g. AB123.
func ValidFlightNumber(s string) bool {
	return flightNumberRe.MatchString(s)
}

// ParseFutureTime parses a departure entry and rejects instants that
// are not strictly after now.
func ParseFutureTime(s string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected date and time like %q", "2026-05-20 14:00")
	}
	if !t.After(now) {
		return time.Time{}, fmt.Errorf("departure time must be in the future")
	}
	return t, nil
}
