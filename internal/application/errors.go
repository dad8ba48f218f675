package application

import "errors"

// Sentinel errors returned by the application services. Handlers map these
// onto HTTP statuses; messages sent to clients stay generic.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFederatedAuth      = errors.New("google authentication failed")
	ErrAccountNotFound    = errors.New("account not found")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrProviderRole       = errors.New("provider role required")
	ErrUserRole           = errors.New("user role required")
	ErrNotOwner           = errors.New("not the owner")
	ErrServiceNotFound    = errors.New("service not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrSelfBooking        = errors.New("cannot book own service")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrBookingConflict    = errors.New("booking was updated concurrently")
)
