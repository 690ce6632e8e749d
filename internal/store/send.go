package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlEnsurePendingSend = `
INSERT INTO newsletter_sends (newsletter_id, subscriber_id, status)
VALUES ($1, $2, 'pending')
ON CONFLICT (newsletter_id, subscriber_id) DO NOTHING
`

// EnsurePendingSend creates the delivery record if it does not exist yet.
// Existing records keep their status.
func (s *Store) EnsurePendingSend(ctx context.Context, newsletterID, subscriberID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, sqlEnsurePendingSend, newsletterID, subscriberID); err != nil {
		return fmt.Errorf("failed to ensure pending send: %w", err)
	}
	return nil
}

const sqlGetSendStatus = `SELECT status FROM newsletter_sends WHERE newsletter_id = $1 AND subscriber_id = $2`

// GetSendStatus returns the delivery record status, or ErrNotFound.
func (s *Store) GetSendStatus(ctx context.Context, newsletterID, subscriberID uuid.UUID) (string, error) {
	var status string
	err := s.db.GetContext(ctx, &status, sqlGetSendStatus, newsletterID, subscriberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get send status: %w", err)
	}
	return status, nil
}

const sqlMarkSendSent = `
UPDATE newsletter_sends SET status = 'sent', sent_at = NOW(), error_message = NULL
WHERE newsletter_id = $1 AND subscriber_id = $2
`

func (s *Store) MarkSendSent(ctx context.Context, newsletterID, subscriberID uuid.UUID) error {
	return s.execOne(ctx, "mark send sent", sqlMarkSendSent, newsletterID, subscriberID)
}

const sqlMarkSendFailed = `
UPDATE newsletter_sends SET status = 'failed', error_message = $3
WHERE newsletter_id = $1 AND subscriber_id = $2
`

func (s *Store) MarkSendFailed(ctx context.Context, newsletterID, subscriberID uuid.UUID, errorMessage string) error {
	return s.execOne(ctx, "mark send failed", sqlMarkSendFailed, newsletterID, subscriberID, errorMessage)
}

const sqlListSendsByNewsletter = `
SELECT id, newsletter_id, subscriber_id, status, sent_at, error_message, created_at
FROM newsletter_sends
WHERE newsletter_id = $1
ORDER BY created_at ASC
`

func (s *Store) ListSendsByNewsletter(ctx context.Context, newsletterID uuid.UUID) ([]NewsletterSend, error) {
	sends := []NewsletterSend{}
	if err := s.db.SelectContext(ctx, &sends, sqlListSendsByNewsletter, newsletterID); err != nil {
		return nil, fmt.Errorf("failed to list sends: %w", err)
	}
	return sends, nil
}

const sqlUpsertNewsletterLink = `
INSERT INTO newsletter_links (newsletter_id, original_url, short_url)
VALUES ($1, $2, $3)
ON CONFLICT (newsletter_id, original_url) DO UPDATE SET short_url = EXCLUDED.short_url
`

func (s *Store) UpsertNewsletterLink(ctx context.Context, newsletterID uuid.UUID, originalURL, shortURL string) error {
	if _, err := s.db.ExecContext(ctx, sqlUpsertNewsletterLink, newsletterID, originalURL, shortURL); err != nil {
		return fmt.Errorf("failed to upsert newsletter link: %w", err)
	}
	return nil
}

const sqlListNewsletterLinks = `
SELECT id, newsletter_id, original_url, short_url, created_at
FROM newsletter_links
WHERE newsletter_id = $1
ORDER BY created_at ASC
`

func (s *Store) ListNewsletterLinks(ctx context.Context, newsletterID uuid.UUID) ([]NewsletterLink, error) {
	links := []NewsletterLink{}
	if err := s.db.SelectContext(ctx, &links, sqlListNewsletterLinks, newsletterID); err != nil {
		return nil, fmt.Errorf("failed to list newsletter links: %w", err)
	}
	return links, nil
}
