package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateTokenParams describes a new single-use token. Exactly one of
// SubscriberID and AdminEmail is set.
type CreateTokenParams struct {
	SubscriberID *uuid.UUID
	AdminEmail   *string
	Token        string
	TokenType    string
	ExpiresAt    time.Time
}

const sqlCreateVerificationToken = `
INSERT INTO verification_tokens (subscriber_id, admin_email, token, token_type, expires_at)
VALUES ($1, $2, $3, $4, $5)
`

func (s *Store) CreateVerificationToken(ctx context.Context, params CreateTokenParams) error {
	_, err := s.db.ExecContext(ctx, sqlCreateVerificationToken,
		params.SubscriberID,
		params.AdminEmail,
		params.Token,
		params.TokenType,
		params.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

const sqlConsumeVerificationToken = `
UPDATE verification_tokens
SET used_at = NOW()
WHERE token = $1 AND token_type = $2 AND used_at IS NULL AND expires_at > NOW()
RETURNING id, subscriber_id, admin_email, token, token_type, expires_at, used_at, created_at
`

// ConsumeVerificationToken marks an unused, unexpired token as used and
// returns it. Unknown, used, expired or mistyped tokens return ErrNotFound.
func (s *Store) ConsumeVerificationToken(ctx context.Context, token, tokenType string) (VerificationToken, error) {
	var t VerificationToken
	err := s.db.GetContext(ctx, &t, sqlConsumeVerificationToken, token, tokenType)
	if err != nil {
		if isNoRows(err) {
			return VerificationToken{}, ErrNotFound
		}
		return VerificationToken{}, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return t, nil
}
