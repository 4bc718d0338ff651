// Package notifications contains the outbound side channels for the RFQ
// context: SMTP email and the admin webhook. All of them are best-effort —
// callers log and swallow failures so a down mail relay never fails a
// submission that already hit the database.
package notifications

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/ghuser/beanbridge/pkg/config"
)

// EmailSender delivers transactional mail over SMTP.
type EmailSender struct {
	client *mail.Client
	from   string
}

// NewEmailSender builds an SMTP sender from config. The connection is dialed
// lazily per send, so construction never blocks startup.
func NewEmailSender(cfg *config.Config) (*EmailSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &EmailSender{client: client, from: cfg.EmailFrom}, nil
}

// Send delivers a plain-text message to a single recipient.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
