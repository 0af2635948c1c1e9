package tasks

import (
	"fmt"

	"github.com/businesscontrol/portal/libs/config"
	"gopkg.in/mail.v2"
)

// Sender delivers one email
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer sends plain text emails over SMTP
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send sends an email using gopkg.in/mail.v2
func (m *Mailer) Send(to, subject, body string) error {
	msg := newMessage(m.from, to, subject, body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func newMessage(from, to, subject, body string) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}
