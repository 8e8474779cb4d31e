package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// NewEmailSender delivers outreach over SMTP. It needs a host and a sender
// address.
func NewEmailSender(host string, port int, user, password, from string) (*EmailSender, error) {
	if host == "" {
		return nil, fmt.Errorf("%w: MAIL_HOST is not configured", entity.ErrConfigurationMissing)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: SENDGRID_FROM_EMAIL is not configured", entity.ErrConfigurationMissing)
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}, nil
}

func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := OutreachEmail{To: to, Subject: subject, Text: body}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Text)
	m.AddAlternative("text/html", email.HTML())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: send SMTP email: %v", entity.ErrUpstreamRequestFailed, err)
	}
	return nil
}
