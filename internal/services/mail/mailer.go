// Package mail wraps the external email-delivery service. When no delivery
// credential is configured the gateway runs in dry-run mode: it logs the
// intended send and returns a synthetic receipt, so every workflow that
// ends in an email stays exercisable without live credentials.
package mail

import (
	"context"
	"fmt"

	"github.com/stormnotes/suite/internal/models"
)

// Mailer delivers HTML email.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) (*models.Receipt, error)
}

// DeliveryError indicates the email could not be delivered. Detail carries
// the provider's message when one was available.
type DeliveryError struct {
	Detail string
	cause  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send email: %s", e.Detail)
}

func (e *DeliveryError) Unwrap() error {
	return e.cause
}
