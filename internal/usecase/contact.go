package usecase

import (
	"context"
	"fmt"
	"html"

	"github.com/shopglow/storefront/internal/email"
)

type ContactUsecase struct {
	email email.Sender
}

func NewContactUsecase(emailSender email.Sender) *ContactUsecase {
	return &ContactUsecase{email: emailSender}
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Send relays one contact-form message. Fire and forget: no retry, the
// caller only learns success or failure.
func (u *ContactUsecase) Send(ctx context.Context, input ContactInput) error {
	subject := fmt.Sprintf("Contact form message from %s", input.Name)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
		html.EscapeString(input.Name),
		html.EscapeString(input.Email),
		html.EscapeString(input.Message),
	)

	if err := u.email.Send(ctx, subject, body, input.Email); err != nil {
		return fmt.Errorf("relay contact message: %w", err)
	}
	return nil
}
