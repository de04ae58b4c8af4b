package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

var (
	// ErrInvalidTransition is returned when the requested edge is not in the
	// state machine, or when a compare-and-set write finds the status moved.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidState is returned when an operation requires an exact current
	// status (e.g. resolving a proposal that is no longer pending).
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("unauthorized")
)

var (
	ErrEmailTaken = errors.New("email is already registered")
)

var (
	ErrValidation = errors.New("validation error")
)
