package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	// ErrLockHeld means another admission for the same date is in flight.
	ErrLockHeld = errors.New("appointment lock held by another request")
)
