// Package smtp submits plain-text mail through an authenticated SMTP server.
package smtp

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"
)

const implicitTLSPort = 465

type Sender struct {
	host     string
	port     int
	from     string
	password string
	timeout  time.Duration
}

// New uses from as both the envelope sender and the SMTP username.
func New(host string, port int, from, password string) *Sender {
	return &Sender{host: host, port: port, from: from, password: password, timeout: 20 * time.Second}
}

func (s *Sender) Name() string { return "smtp" }

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := s.build(to, subject, body)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(s.host, s.options()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func (s *Sender) build(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("smtp from %q: %w", s.from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp to %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *Sender) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.from),
		mail.WithPassword(s.password),
		mail.WithTimeout(s.timeout),
	}
	if s.port == implicitTLSPort {
		return append(opts, mail.WithSSL())
	}
	return append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
}
