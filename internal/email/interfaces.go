package email

import (
	"context"
)

// EmailSender defines the interface for sending transactional emails
type EmailSender interface {
	// SendVerificationEmail asks a new subscriber to confirm their address
	SendVerificationEmail(ctx context.Context, to, name, verificationLink string) error

	// SendAdminLoginEmail delivers a magic sign-in link to an admin
	SendAdminLoginEmail(ctx context.Context, to, loginLink string) error
}
