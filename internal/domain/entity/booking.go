package entity

import "time"

// BookingStatus is the closed lifecycle vocabulary for bookings.
// "cancelled" from older clients is accepted as an alias of "rejected".
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingRejected  BookingStatus = "rejected"
)

// ParseTargetStatus validates a requested status transition target.
// "pending" is the creation state and is never a valid target.
func ParseTargetStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCompleted, BookingRejected:
		return BookingStatus(s), true
	case "cancelled":
		return BookingRejected, true
	}
	return "", false
}

// Booking is a request by a user to engage a provider for a specific
// service and time. UserID, ProviderID and ServiceID are non-owning
// references; ProviderID is always derived from the service's record,
// never taken from the client.
//
// Version is a monotonic counter used for compare-and-swap status updates,
// so two concurrent transitions cannot silently overwrite each other.
type Booking struct {
	ID         string
	UserID     string
	ProviderID string
	ServiceID  string
	Date       time.Time
	Status     BookingStatus
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingDetail is the read model for booking lists, carrying the
// user/provider/service summaries the dashboards render.
type BookingDetail struct {
	Booking
	UserName        string
	UserEmail       string
	ProviderName    string
	ProviderEmail   string
	ServiceName     string
	ServiceCategory string
	ServicePrice    float64
	ServiceLocation string
}
