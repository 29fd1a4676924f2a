package domain

import "errors"

// Sentinel errors shared across stores, services and delivery.
var (
	// ErrInvalidInput is returned for malformed input (e.g. slot capacity < 1). Callers wrap it with
	// detail: fmt.Errorf("%w: ...", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a slot or reservation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by a reservation store when the (user, slot) pair already exists.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyBooked is returned by the booking service when the user already holds the slot.
	ErrAlreadyBooked = errors.New("you already hold this slot")
	// ErrSlotFull is returned when no seats remain on a slot.
	ErrSlotFull = errors.New("no seats remain on this slot")
	// ErrForbidden is returned when the caller lacks the admin flag.
	ErrForbidden = errors.New("forbidden")
	// ErrNotAllowListed is returned when an email is not on the allow-list.
	ErrNotAllowListed = errors.New("this email is not registered")
	// ErrInvalidLoginCode is returned when a login code is wrong, expired or already used.
	ErrInvalidLoginCode = errors.New("invalid or expired code")
	// ErrRateLimited is returned when too many login codes were requested for one email.
	ErrRateLimited = errors.New("too many requests")
	// ErrRetryable marks a store failure caused by a serialization conflict or deadlock.
	ErrRetryable = errors.New("transaction conflict, retry")
)
