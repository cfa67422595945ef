package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, subject, body, replyTo string) error
}

// LogSender logs messages instead of relaying them — used in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, subject, body, replyTo string) error {
	s.logger.Info("contact message (local dev)", "subject", subject, "reply_to", replyTo, "body", body)
	return nil
}

// ResendSender relays messages via the Resend API — used in staging/production.
type ResendSender struct {
	client *resend.Client
	from   string
	to     string
}

func (s *ResendSender) Send(ctx context.Context, subject, body, replyTo string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    body,
	}
	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, ResendSender otherwise.
func NewSender(env, apiKey, from, to string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}
