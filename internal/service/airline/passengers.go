package airline

import (
	"errors"
	"strings"

	"github.com/antonvlasov/airline/internal/domain"
)

// AddPassenger registers a passenger and returns its id. National id
// and passport number must be unique among non-deleted passengers.
func (s *Service) AddPassenger(name, passport, nationalID, nationality string, wallet domain.Cents) (int64, error) {
	if name == "" {
		return 0, errors.New("name is required")
	}
	if passport == "" {
		return 0, errors.New("passport number is required")
	}
	if nationalID == "" {
		return 0, errors.New("national id is required")
	}
	if wallet < 0 {
		return 0, errors.New("wallet balance must not be negative")
	}
	if s.isNationalIDTaken(nationalID, 0) {
		return 0, domain.ErrDuplicateNationalID
	}
	if s.isPassportTaken(passport, 0) {
		return 0, domain.ErrDuplicatePassport
	}

	id := s.nextPassengerID
	s.nextPassengerID++
	s.passengers = append(s.passengers, domain.Passenger{
		ID:             id,
		Name:           name,
		PassportNumber: passport,
		NationalID:     nationalID,
		Nationality:    nationality,
		Wallet:         wallet,
	})

	s.markDirty()
	s.autoSave()
	return id, nil
}

// UpdatePassenger edits a passenger in place. Uniqueness is re-checked
// excluding the record itself, so a passenger keeps its own values.
func (s *Service) UpdatePassenger(id int64, name, passport, nationalID, nationality string) error {
	p := s.findPassenger(id)
	if p == nil {
		return domain.ErrPassengerNotFound
	}
	if name == "" || passport == "" || nationalID == "" {
		return errors.New("name, passport and national id are required")
	}
	if s.isPassportTaken(passport, id) {
		return domain.ErrDuplicatePassport
	}
	if s.isNationalIDTaken(nationalID, id) {
		return domain.ErrDuplicateNationalID
	}

	p.Name = name
	p.PassportNumber = passport
	p.NationalID = nationalID
	p.Nationality = nationality

	s.markDirty()
	s.autoSave()
	return nil
}

// DeletePassenger soft-deletes a passenger. Blocked while any
// non-cancelled reservation still references the id.
func (s *Service) DeletePassenger(id int64) error {
	p := s.findPassenger(id)
	if p == nil {
		return domain.ErrPassengerNotFound
	}
	for _, r := range s.reservations {
		if r.PassengerID == id && r.Active() {
			return domain.ErrHasActiveReservations
		}
	}

	p.Deleted = true
	s.markDirty()
	s.autoSave()
	return nil
}

func (s *Service) FindPassenger(id int64) (domain.Passenger, error) {
	p := s.findPassenger(id)
	if p == nil {
		return domain.Passenger{}, domain.ErrPassengerNotFound
	}
	return *p, nil
}

func (s *Service) ListPassengers() []domain.Passenger {
	out := make([]domain.Passenger, 0, len(s.passengers))
	for _, p := range s.passengers {
		if !p.Deleted {
			out = append(out, p)
		}
	}
	return out
}

// SearchPassengers matches the term against name, passport number and
// national id of non-deleted passengers.
func (s *Service) SearchPassengers(term string) []domain.Passenger {
	var out []domain.Passenger
	for _, p := range s.passengers {
		if p.Deleted {
			continue
		}
		if strings.Contains(p.Name, term) ||
			strings.Contains(p.PassportNumber, term) ||
			strings.Contains(p.NationalID, term) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) isNationalIDTaken(nationalID string, excludeID int64) bool {
	for _, p := range s.passengers {
		if !p.Deleted && p.NationalID == nationalID && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *Service) isPassportTaken(passport string, excludeID int64) bool {
	for _, p := range s.passengers {
		if !p.Deleted && p.PassportNumber == passport && p.ID != excludeID {
			return true
		}
	}
	return false
}
