package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateNewsletterParams represents parameters for creating a draft newsletter
type CreateNewsletterParams struct {
	Title           string
	Slug            string
	MarkdownContent string
	TemplateID      *uuid.UUID
	CreatedBy       string
}

// UpdateNewsletterParams holds the editable fields of a draft
type UpdateNewsletterParams struct {
	Title           string
	MarkdownContent string
	TemplateID      *uuid.UUID
}

// SentNewsletter is an archive listing entry.
type SentNewsletter struct {
	Slug   string    `db:"slug" json:"slug"`
	Title  string    `db:"title" json:"title"`
	SentAt time.Time `db:"sent_at" json:"sent_at"`
}

const newsletterColumns = `id, title, slug, markdown_content, template_id, rendered_html, status, scheduled_at, sending_started_at, sending_completed_at, sent_count, failed_count, total_count, created_by, created_at, updated_at`

const sqlCreateNewsletter = `
INSERT INTO newsletters (title, slug, markdown_content, template_id, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + newsletterColumns

// CreateNewsletter inserts a draft. A duplicate slug returns ErrAlreadyExists.
func (s *Store) CreateNewsletter(ctx context.Context, params CreateNewsletterParams) (Newsletter, error) {
	var n Newsletter
	err := s.db.GetContext(ctx, &n, sqlCreateNewsletter,
		params.Title,
		params.Slug,
		params.MarkdownContent,
		params.TemplateID,
		params.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return Newsletter{}, ErrAlreadyExists
		}
		return Newsletter{}, fmt.Errorf("failed to create newsletter: %w", err)
	}
	return n, nil
}

func (s *Store) getNewsletter(ctx context.Context, op, query string, args ...interface{}) (Newsletter, error) {
	var n Newsletter
	err := s.db.GetContext(ctx, &n, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Newsletter{}, ErrNotFound
		}
		return Newsletter{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return n, nil
}

const sqlGetNewsletterByID = `SELECT ` + newsletterColumns + ` FROM newsletters WHERE id = $1`

func (s *Store) GetNewsletterByID(ctx context.Context, id uuid.UUID) (Newsletter, error) {
	return s.getNewsletter(ctx, "get newsletter by id", sqlGetNewsletterByID, id)
}

const sqlGetSentNewsletterBySlug = `SELECT ` + newsletterColumns + ` FROM newsletters WHERE slug = $1 AND status = 'sent'`

// GetSentNewsletterBySlug only finds newsletters that finished sending.
func (s *Store) GetSentNewsletterBySlug(ctx context.Context, slug string) (Newsletter, error) {
	return s.getNewsletter(ctx, "get sent newsletter by slug", sqlGetSentNewsletterBySlug, slug)
}

const sqlListNewsletters = `SELECT ` + newsletterColumns + ` FROM newsletters ORDER BY created_at DESC`

func (s *Store) ListNewsletters(ctx context.Context) ([]Newsletter, error) {
	newsletters := []Newsletter{}
	if err := s.db.SelectContext(ctx, &newsletters, sqlListNewsletters); err != nil {
		return nil, fmt.Errorf("failed to list newsletters: %w", err)
	}
	return newsletters, nil
}

const sqlListSentNewsletters = `
SELECT slug, title, COALESCE(sending_completed_at, updated_at) AS sent_at
FROM newsletters
WHERE status = 'sent'
ORDER BY sent_at DESC
`

func (s *Store) ListSentNewsletters(ctx context.Context) ([]SentNewsletter, error) {
	sent := []SentNewsletter{}
	if err := s.db.SelectContext(ctx, &sent, sqlListSentNewsletters); err != nil {
		return nil, fmt.Errorf("failed to list sent newsletters: %w", err)
	}
	return sent, nil
}

const sqlUpdateDraftNewsletter = `
UPDATE newsletters
SET title = $2, markdown_content = $3, template_id = $4, updated_at = NOW()
WHERE id = $1 AND status = 'draft'
RETURNING ` + newsletterColumns

// UpdateDraftNewsletter edits a draft. Anything else returns ErrNotFound.
func (s *Store) UpdateDraftNewsletter(ctx context.Context, id uuid.UUID, params UpdateNewsletterParams) (Newsletter, error) {
	return s.getNewsletter(ctx, "update draft newsletter", sqlUpdateDraftNewsletter,
		id, params.Title, params.MarkdownContent, params.TemplateID)
}

const sqlDeleteDraftNewsletter = `DELETE FROM newsletters WHERE id = $1 AND status = 'draft'`

func (s *Store) DeleteDraftNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "delete draft newsletter", sqlDeleteDraftNewsletter, id)
}

const sqlScheduleNewsletter = `
UPDATE newsletters
SET status = 'scheduled', scheduled_at = $2, updated_at = NOW()
WHERE id = $1 AND status = 'draft'
RETURNING ` + newsletterColumns

func (s *Store) ScheduleNewsletter(ctx context.Context, id uuid.UUID, at time.Time) (Newsletter, error) {
	return s.getNewsletter(ctx, "schedule newsletter", sqlScheduleNewsletter, id, at)
}

const sqlListDueScheduledNewsletters = `
SELECT ` + newsletterColumns + `
FROM newsletters
WHERE status = 'scheduled' AND scheduled_at <= $1
ORDER BY scheduled_at ASC
`

func (s *Store) ListDueScheduledNewsletters(ctx context.Context, now time.Time) ([]Newsletter, error) {
	var due []Newsletter
	if err := s.db.SelectContext(ctx, &due, sqlListDueScheduledNewsletters, now); err != nil {
		return nil, fmt.Errorf("failed to list due newsletters: %w", err)
	}
	return due, nil
}

const sqlGetNewsletterProgress = `SELECT status, sent_count, failed_count, total_count FROM newsletters WHERE id = $1`

func (s *Store) GetNewsletterProgress(ctx context.Context, id uuid.UUID) (NewsletterProgress, error) {
	var p NewsletterProgress
	err := s.db.GetContext(ctx, &p, sqlGetNewsletterProgress, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewsletterProgress{}, ErrNotFound
		}
		return NewsletterProgress{}, fmt.Errorf("failed to get newsletter progress: %w", err)
	}
	return p, nil
}

const sqlGetNewsletterStatus = `SELECT status FROM newsletters WHERE id = $1`

func (s *Store) GetNewsletterStatus(ctx context.Context, id uuid.UUID) (string, error) {
	var status string
	err := s.db.GetContext(ctx, &status, sqlGetNewsletterStatus, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get newsletter status: %w", err)
	}
	return status, nil
}

const sqlSetNewsletterStatus = `
UPDATE newsletters
SET status = $2,
    sending_started_at = CASE WHEN $2 = 'sending' THEN COALESCE(sending_started_at, NOW()) ELSE sending_started_at END,
    sending_completed_at = CASE WHEN $2 IN ('sent', 'failed') THEN NOW() ELSE sending_completed_at END,
    updated_at = NOW()
WHERE id = $1
`

// SetNewsletterStatus moves a newsletter to status, stamping the start of the
// first send and the end of the last one.
func (s *Store) SetNewsletterStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.execOne(ctx, "set newsletter status", sqlSetNewsletterStatus, id, status)
}

const sqlSetNewsletterRenderedHTML = `UPDATE newsletters SET rendered_html = $2, updated_at = NOW() WHERE id = $1`

func (s *Store) SetNewsletterRenderedHTML(ctx context.Context, id uuid.UUID, html string) error {
	return s.execOne(ctx, "set newsletter rendered html", sqlSetNewsletterRenderedHTML, id, html)
}

const sqlSetNewsletterTotal = `UPDATE newsletters SET total_count = $2, updated_at = NOW() WHERE id = $1`

func (s *Store) SetNewsletterTotal(ctx context.Context, id uuid.UUID, total int) error {
	return s.execOne(ctx, "set newsletter total", sqlSetNewsletterTotal, id, total)
}

const sqlUpdateNewsletterCounts = `
UPDATE newsletters SET sent_count = $2, failed_count = $3, updated_at = NOW()
WHERE id = $1
`

func (s *Store) UpdateNewsletterCounts(ctx context.Context, id uuid.UUID, sent, failed int) error {
	return s.execOne(ctx, "update newsletter counts", sqlUpdateNewsletterCounts, id, sent, failed)
}

// Cancel transitions. Each only applies from its source status so a
// concurrent change is not overwritten.
const (
	sqlCancelScheduledNewsletter = `
UPDATE newsletters SET status = 'draft', scheduled_at = NULL, updated_at = NOW()
WHERE id = $1 AND status = 'scheduled'
`
	sqlPauseSendingNewsletter = `
UPDATE newsletters SET status = 'paused', updated_at = NOW()
WHERE id = $1 AND status = 'sending'
`
	sqlFinalizePausedNewsletter = `
UPDATE newsletters SET status = 'sent', sending_completed_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = 'paused'
`
)

// CancelScheduledNewsletter returns a scheduled newsletter to draft.
func (s *Store) CancelScheduledNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "cancel scheduled newsletter", sqlCancelScheduledNewsletter, id)
}

// PauseSendingNewsletter asks a running send to stop after its current recipient.
func (s *Store) PauseSendingNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "pause newsletter", sqlPauseSendingNewsletter, id)
}

// FinalizePausedNewsletter accepts a partial delivery as final.
func (s *Store) FinalizePausedNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "finalize paused newsletter", sqlFinalizePausedNewsletter, id)
}

// The scheduler claims a due newsletter before queueing it so later ticks
// skip it. A claim that could not be queued is handed back.
const (
	sqlClaimScheduledNewsletter = `
UPDATE newsletters SET status = 'sending', updated_at = NOW()
WHERE id = $1 AND status = 'scheduled'
`
	sqlReleaseScheduledClaim = `
UPDATE newsletters SET status = 'scheduled', updated_at = NOW()
WHERE id = $1 AND status = 'sending' AND sending_started_at IS NULL
`
)

// ClaimScheduledNewsletter moves a scheduled newsletter to sending. It
// returns ErrNotFound when the newsletter is no longer scheduled.
func (s *Store) ClaimScheduledNewsletter(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "claim scheduled newsletter", sqlClaimScheduledNewsletter, id)
}

// ReleaseScheduledClaim undoes ClaimScheduledNewsletter if no run started.
func (s *Store) ReleaseScheduledClaim(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "release scheduled claim", sqlReleaseScheduledClaim, id)
}
