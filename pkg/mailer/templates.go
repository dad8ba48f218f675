package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var bookingCreatedTpl = template.Must(template.New(KindBookingCreated).Parse(`
<p>Hi {{.ProviderName}},</p>
<p><b>{{.UserName}}</b> has requested a booking for <b>{{.ServiceName}}</b>
on {{.Date}}.</p>
<p>Log in to your dashboard to confirm or reject the request.</p>
`))

var bookingStatusTpl = template.Must(template.New(KindBookingStatus).Parse(`
<p>Hi {{.UserName}},</p>
<p>Your booking for <b>{{.ServiceName}}</b> is now
<b>{{.Status}}</b>.</p>
`))

// Render produces the subject and HTML body for a notification job.
func Render(job NotificationJob) (subject, html string, err error) {
	var tpl *template.Template
	switch job.Kind {
	case KindBookingCreated:
		tpl = bookingCreatedTpl
		subject = "New booking request"
	case KindBookingStatus:
		tpl = bookingStatusTpl
		subject = fmt.Sprintf("Your booking is %s", job.Data["Status"])
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", job.Kind)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, job.Data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
