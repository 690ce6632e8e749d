package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateSubscriberParams represents parameters for creating a subscriber
type CreateSubscriberParams struct {
	Email         string
	Name          string
	SecretCode    string
	Ucode         string
	Source        string
	Status        bool
	VerifiedEmail bool
}

// SubscriberCounts are the dashboard totals.
type SubscriberCounts struct {
	Total    int `db:"total" json:"total"`
	Active   int `db:"active" json:"active"`
	Verified int `db:"verified" json:"verified"`
}

// SubscriberSecret is what an admin link scan needs per subscriber.
type SubscriberSecret struct {
	ID         uuid.UUID `db:"id"`
	Email      string    `db:"email"`
	SecretCode string    `db:"secret_code"`
}

// ListSubscribersParams pages through subscribers, optionally filtered by a
// case-insensitive substring of email or name.
type ListSubscribersParams struct {
	Search string
	Limit  int
	Offset int
}

const subscriberColumns = `id, email, name, secret_code, ucode, status, verified_email, bounced_at, legacy_admin_link, subscription_source, created_at, updated_at`

const sqlCreateSubscriber = `
INSERT INTO subscribers (email, name, secret_code, ucode, subscription_source, status, verified_email)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + subscriberColumns

// CreateSubscriber inserts a subscriber. A duplicate email returns ErrAlreadyExists.
func (s *Store) CreateSubscriber(ctx context.Context, params CreateSubscriberParams) (Subscriber, error) {
	var sub Subscriber
	err := s.db.GetContext(ctx, &sub, sqlCreateSubscriber,
		params.Email,
		params.Name,
		params.SecretCode,
		params.Ucode,
		params.Source,
		params.Status,
		params.VerifiedEmail)
	if err != nil {
		if isUniqueViolation(err) {
			return Subscriber{}, ErrAlreadyExists
		}
		return Subscriber{}, fmt.Errorf("failed to create subscriber: %w", err)
	}
	return sub, nil
}

func (s *Store) getSubscriber(ctx context.Context, op, query string, arg interface{}) (Subscriber, error) {
	var sub Subscriber
	err := s.db.GetContext(ctx, &sub, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscriber{}, ErrNotFound
		}
		return Subscriber{}, fmt.Errorf("failed to get subscriber by %s: %w", op, err)
	}
	return sub, nil
}

const sqlGetSubscriberByID = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`

func (s *Store) GetSubscriberByID(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	return s.getSubscriber(ctx, "id", sqlGetSubscriberByID, id)
}

const sqlGetSubscriberByEmail = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email = $1`

func (s *Store) GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error) {
	return s.getSubscriber(ctx, "email", sqlGetSubscriberByEmail, email)
}

const sqlGetSubscriberByUcode = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE ucode = $1`

func (s *Store) GetSubscriberByUcode(ctx context.Context, ucode string) (Subscriber, error) {
	return s.getSubscriber(ctx, "ucode", sqlGetSubscriberByUcode, ucode)
}

const sqlGetSubscriberByLegacyAdminLink = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE legacy_admin_link = $1`

// GetSubscriberByLegacyAdminLink finds records imported with a precomputed link.
func (s *Store) GetSubscriberByLegacyAdminLink(ctx context.Context, link string) (Subscriber, error) {
	return s.getSubscriber(ctx, "legacy admin link", sqlGetSubscriberByLegacyAdminLink, link)
}

const sqlListEligibleSubscribers = `
SELECT ` + subscriberColumns + `
FROM subscribers
WHERE status = TRUE AND verified_email = TRUE AND bounced_at IS NULL
ORDER BY created_at ASC, id ASC
`

// ListEligibleSubscribers returns everyone a newsletter should go to right now,
// in a stable order.
func (s *Store) ListEligibleSubscribers(ctx context.Context) ([]Subscriber, error) {
	var subs []Subscriber
	if err := s.db.SelectContext(ctx, &subs, sqlListEligibleSubscribers); err != nil {
		return nil, fmt.Errorf("failed to list eligible subscribers: %w", err)
	}
	return subs, nil
}

const sqlListSubscriberSecrets = `SELECT id, email, secret_code FROM subscribers ORDER BY created_at ASC`

func (s *Store) ListSubscriberSecrets(ctx context.Context) ([]SubscriberSecret, error) {
	var secrets []SubscriberSecret
	if err := s.db.SelectContext(ctx, &secrets, sqlListSubscriberSecrets); err != nil {
		return nil, fmt.Errorf("failed to list subscriber secrets: %w", err)
	}
	return secrets, nil
}

const sqlListSubscribers = `
SELECT ` + subscriberColumns + `
FROM subscribers
WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

func (s *Store) ListSubscribers(ctx context.Context, params ListSubscribersParams) ([]Subscriber, error) {
	subs := []Subscriber{}
	if err := s.db.SelectContext(ctx, &subs, sqlListSubscribers, params.Search, params.Limit, params.Offset); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

const sqlCountSubscribers = `
SELECT COUNT(*)
FROM subscribers
WHERE $1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
`

func (s *Store) CountSubscribers(ctx context.Context, search string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountSubscribers, search); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

const sqlGetSubscriberCounts = `
SELECT COUNT(*) AS total,
       COUNT(*) FILTER (WHERE status) AS active,
       COUNT(*) FILTER (WHERE verified_email) AS verified
FROM subscribers
`

func (s *Store) GetSubscriberCounts(ctx context.Context) (SubscriberCounts, error) {
	var counts SubscriberCounts
	if err := s.db.GetContext(ctx, &counts, sqlGetSubscriberCounts); err != nil {
		return SubscriberCounts{}, fmt.Errorf("failed to get subscriber counts: %w", err)
	}
	return counts, nil
}

const sqlUpdateSubscriberName = `UPDATE subscribers SET name = $2, updated_at = NOW() WHERE id = $1`

func (s *Store) UpdateSubscriberName(ctx context.Context, id uuid.UUID, name string) error {
	return s.execOne(ctx, "update subscriber name", sqlUpdateSubscriberName, id, name)
}

const sqlSetSubscriberStatus = `UPDATE subscribers SET status = $2, updated_at = NOW() WHERE id = $1`

func (s *Store) SetSubscriberStatus(ctx context.Context, id uuid.UUID, status bool) error {
	return s.execOne(ctx, "set subscriber status", sqlSetSubscriberStatus, id, status)
}

const sqlToggleSubscriberStatus = `
UPDATE subscribers SET status = NOT status, updated_at = NOW()
WHERE id = $1
RETURNING ` + subscriberColumns

func (s *Store) ToggleSubscriberStatus(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	return s.getSubscriber(ctx, "id for toggle", sqlToggleSubscriberStatus, id)
}

const sqlMarkSubscriberVerified = `
UPDATE subscribers SET verified_email = TRUE, status = TRUE, updated_at = NOW()
WHERE id = $1
`

// MarkSubscriberVerified completes double opt-in.
func (s *Store) MarkSubscriberVerified(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "mark subscriber verified", sqlMarkSubscriberVerified, id)
}

const sqlMarkSubscriberBounced = `UPDATE subscribers SET bounced_at = NOW(), updated_at = NOW() WHERE id = $1`

// MarkSubscriberBounced excludes the subscriber from every future send.
func (s *Store) MarkSubscriberBounced(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "mark subscriber bounced", sqlMarkSubscriberBounced, id)
}

const sqlResubscribeSubscriber = `
UPDATE subscribers SET status = TRUE, bounced_at = NULL, updated_at = NOW()
WHERE id = $1
`

// ResubscribeSubscriber restores consent and clears a previous hard bounce.
func (s *Store) ResubscribeSubscriber(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "resubscribe subscriber", sqlResubscribeSubscriber, id)
}
