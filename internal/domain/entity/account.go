package entity

import (
	"time"
)

// Role is the access class of an Account.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
)

// ParseRole validates a role string, defaulting empty input to RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleProvider:
		return Role(s), true
	}
	return "", false
}

// Account is the aggregate root for the identity domain. It covers both
// consumers (role=user) and sellers (role=provider).
//
// Password holds a bcrypt hash and is empty for accounts created through
// Google login; such accounts carry GoogleID instead. At least one of the
// two must be present.
type Account struct {
	ID              string
	Name            string
	Email           string
	Password        string
	GoogleID        string
	Role            Role
	BusinessName    string
	ServicesOffered []string
	AvatarURL       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsProvider reports whether the account may own services and bookings.
func (a *Account) IsProvider() bool { return a.Role == RoleProvider }
