package notify

import (
	"gopkg.in/gomail.v2"

	"taskmate/pkg/utils"
)

// Mailer delivers one reminder message. Delivery failure is never
// fatal; the scheduler logs it and moves on.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends reminders through an SMTP account
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Send dials the configured server and delivers a single plain-text message
func (m SMTPMailer) Send(to, subject, body string) error {
	from := m.From
	if from == "" {
		from = m.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

// TraceMailer is the fallback when no SMTP account is configured: the
// would-be message goes to the log and nowhere else
type TraceMailer struct{}

// Send writes the message to the debug log
func (TraceMailer) Send(to, subject, body string) error {
	utils.Log("Mail not configured; would send to %s", to)
	utils.Log("Subject: %s", subject)
	utils.Log("%s", body)
	return nil
}
