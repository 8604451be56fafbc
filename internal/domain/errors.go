package domain

import "errors"

// Not-found errors.
var (
	ErrPassengerNotFound   = errors.New("passenger not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Conflict errors.
var (
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrDuplicatePassport   = errors.New("passport number already registered")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
)

// Policy violations. Expected outcomes, not faults.
var (
	ErrInsufficientBalance   = errors.New("insufficient wallet balance")
	ErrFlightFull            = errors.New("flight is full")
	ErrRefundNotAllowed      = errors.New("refund is not allowed this close to departure")
	ErrFlightCompleted       = errors.New("flight is already completed")
	ErrHasActiveReservations = errors.New("has active reservations")
)
