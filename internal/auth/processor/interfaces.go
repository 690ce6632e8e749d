package processor

import (
	"context"

	"newsletter-server/internal/store"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	CreateVerificationToken(ctx context.Context, params store.CreateTokenParams) error
	ConsumeVerificationToken(ctx context.Context, token, tokenType string) (store.VerificationToken, error)
}

// EmailService defines the email operations required by AuthProcessor
type EmailService interface {
	SendAdminLoginEmail(ctx context.Context, to, loginLink string) error
}

// AuditLogger records admin actions
type AuditLogger interface {
	Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string)
}
