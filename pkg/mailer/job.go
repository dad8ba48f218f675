package mailer

// Job kinds put on the notification queue.
const (
	KindBookingCreated = "booking_created"
	KindBookingStatus  = "booking_status"
)

// NotificationJob is the JSON payload published to RabbitMQ when a booking
// is created or changes status. The worker renders the matching template
// and sends the email.
type NotificationJob struct {
	To   string            `json:"to"`
	Kind string            `json:"kind"`
	Data map[string]string `json:"data,omitempty"`
}
