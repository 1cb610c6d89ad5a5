package notify

import (
	"fmt"
	"net/smtp"
)

// SMTPNotifier sends plain-text confirmation and cancellation emails through
// a standard SMTP relay. With no host configured it stays nil and the
// dispatcher skips delivery.
type SMTPNotifier struct {
	addr    string
	from    string
	auth    smtp.Auth
	baseURL string
}

func NewSMTPNotifier(host, port, user, password, from, baseURL string) *SMTPNotifier {
	if host == "" {
		return nil
	}

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}

	return &SMTPNotifier{
		addr:    fmt.Sprintf("%s:%s", host, port),
		from:    from,
		auth:    auth,
		baseURL: baseURL,
	}
}

func (n *SMTPNotifier) NotifyBooked(b Booking) error {
	cancelURL := fmt.Sprintf("%s/api/public/cancel/%s", n.baseURL, b.CancelToken)

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your appointment is confirmed.\n\n"+
			"Service: %s\n"+
			"Barber: %s\n"+
			"Date & time: %s\n"+
			"Location: %s\n\n"+
			"Need to cancel? Use this link: %s\n\n"+
			"We look forward to seeing you!\n",
		b.ClientName,
		b.ServiceName,
		b.BarberName,
		b.When.Format("Monday, January 2, 2006 at 15:04"),
		b.LocationName,
		cancelURL,
	)

	return n.send(b.To, "Appointment Confirmation", body)
}

func (n *SMTPNotifier) NotifyCancelled(c Cancellation) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your appointment has been cancelled as requested.\n\n"+
			"Service: %s\n"+
			"Date & time: %s\n\n"+
			"Your time slot is now available for other customers.\n"+
			"You can book a new appointment anytime.\n",
		c.ClientName,
		c.ServiceName,
		c.When.Format("Monday, January 2, 2006 at 15:04"),
	)

	return n.send(c.To, "Appointment Cancelled", body)
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		n.from, to, subject, body,
	)
	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg))
}

var _ Notifier = (*SMTPNotifier)(nil)
