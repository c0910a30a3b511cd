package services

import (
	"context"
	"fmt"

	"storefront/pkg/mailer"
)

const contactSubject = "Received contact form submission"

// ContactService dispatches contact form submissions to the site operators.
// Submissions are not persisted; the notification email is the record.
type ContactService struct {
	mailer      mailer.Mailer
	fromAddress string
	notifyEmail string
}

// NewContactService creates a new ContactService.
func NewContactService(m mailer.Mailer, fromAddress, notifyEmail string) *ContactService {
	return &ContactService{
		mailer:      m,
		fromAddress: fromAddress,
		notifyEmail: notifyEmail,
	}
}

// SendMessage composes the notification for a validated submission and
// dispatches it to the configured notification address.
func (s *ContactService) SendMessage(ctx context.Context, name, email, message string) error {
	body := fmt.Sprintf(`Received message below from %s, %s
________________________________________________

%s
`, name, email, message)

	if err := s.mailer.Send(ctx, s.fromAddress, s.notifyEmail, contactSubject, body); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}
