package notifier

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// EmailNotifier sends alerts through the Resend API.
type EmailNotifier struct {
	client    *resend.Client
	fromEmail string
}

func NewEmailNotifier(apiKey, fromEmail string) *EmailNotifier {
	return &EmailNotifier{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, to, subject, html string) error {

	params := &resend.SendEmailRequest{
		From:    n.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	return nil
}
