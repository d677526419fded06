package mail

import (
	"context"

	"github.com/inkdrop-studio/payhook/internal/pkg/env"
)

// Mailer delivers one rendered email. Implementations do not retry: by the
// time a download email is attempted the purchase is already confirmed, so
// callers log failures instead of surfacing them to the buyer.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// FromEnv picks the configured delivery path: the Resend API when an API key
// is present, plain SMTP otherwise.
func FromEnv() Mailer {
	if env.GetEnv("RESEND_API_KEY", "") != "" {
		return NewResendMailerFromEnv()
	}
	return NewSMTPMailerFromEnv()
}
