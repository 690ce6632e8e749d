// Package delivery drives newsletter campaigns through their recipients and
// triggers scheduled campaigns when they come due.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"newsletter-server/internal/clients/mail"
	"newsletter-server/internal/content"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
	"newsletter-server/internal/workers"
)

var (
	ErrNotSendable            = errors.New("newsletter is not in a sendable state")
	ErrAlreadyRunning         = errors.New("newsletter send already running")
	ErrDefaultTemplateMissing = errors.New("default newsletter template is missing")
)

// Store defines the database operations required by Orchestrator
type Store interface {
	GetNewsletterByID(ctx context.Context, id uuid.UUID) (store.Newsletter, error)
	GetNewsletterStatus(ctx context.Context, id uuid.UUID) (string, error)
	SetNewsletterStatus(ctx context.Context, id uuid.UUID, status string) error
	SetNewsletterRenderedHTML(ctx context.Context, id uuid.UUID, html string) error
	SetNewsletterTotal(ctx context.Context, id uuid.UUID, total int) error
	UpdateNewsletterCounts(ctx context.Context, id uuid.UUID, sent, failed int) error
	GetTemplateByID(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error)
	GetTemplateBySlug(ctx context.Context, slug string) (store.NewsletterTemplate, error)
	ListNewsletterLinks(ctx context.Context, newsletterID uuid.UUID) ([]store.NewsletterLink, error)
	UpsertNewsletterLink(ctx context.Context, newsletterID uuid.UUID, originalURL, shortURL string) error
	ListEligibleSubscribers(ctx context.Context) ([]store.Subscriber, error)
	EnsurePendingSend(ctx context.Context, newsletterID, subscriberID uuid.UUID) error
	GetSendStatus(ctx context.Context, newsletterID, subscriberID uuid.UUID) (string, error)
	MarkSendSent(ctx context.Context, newsletterID, subscriberID uuid.UUID) error
	MarkSendFailed(ctx context.Context, newsletterID, subscriberID uuid.UUID, errorMessage string) error
	MarkSubscriberBounced(ctx context.Context, id uuid.UUID) error
}

// Config holds the orchestrator settings.
type Config struct {
	BaseURL             string
	DefaultTemplateSlug string
	// SendDelay is the minimum gap between two deliveries of one campaign.
	SendDelay time.Duration
}

// Orchestrator sends one campaign at a time per newsletter, one recipient at
// a time, and can resume a paused campaign without sending twice.
type Orchestrator struct {
	store     Store
	transport mail.Transport
	shortener content.Shortener
	metrics   *observability.Metrics
	logger    *observability.Logger
	cfg       Config

	mu      sync.Mutex
	running map[uuid.UUID]struct{}
}

// NewOrchestrator creates an orchestrator. shortener may be nil, in which case
// links are left as written.
func NewOrchestrator(
	store Store,
	transport mail.Transport,
	shortener content.Shortener,
	metrics *observability.Metrics,
	logger *observability.Logger,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		store:     store,
		transport: transport,
		shortener: shortener,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		running:   make(map[uuid.UUID]struct{}),
	}
}

// Process runs a job queued on the send pool. A job carrying a
// RequireStatus only runs while the newsletter is still in that status.
func (o *Orchestrator) Process(ctx context.Context, job workers.Job) error {
	return o.send(ctx, job.NewsletterID, job.RequireStatus)
}

// Name identifies the orchestrator in worker pool logs.
func (o *Orchestrator) Name() string {
	return "newsletter-delivery"
}

func (o *Orchestrator) claim(id uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.running[id]; ok {
		return false
	}
	o.running[id] = struct{}{}
	return true
}

func (o *Orchestrator) release(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.running, id)
}

// IsRunning reports whether a send of the newsletter is in progress here.
func (o *Orchestrator) IsRunning(id uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.running[id]
	return ok
}

func sendable(status string) bool {
	switch status {
	case store.NewsletterStatusDraft,
		store.NewsletterStatusScheduled,
		store.NewsletterStatusPaused,
		store.NewsletterStatusSending:
		return true
	}
	return false
}

// Send delivers a newsletter to every eligible subscriber. Database errors on
// campaign state abort the run and leave the campaign in its last status.
// Failures for a single recipient are recorded and the run goes on.
// The run stops as soon as the newsletter leaves the sending status.
func (o *Orchestrator) Send(ctx context.Context, newsletterID uuid.UUID) error {
	return o.send(ctx, newsletterID, "")
}

func (o *Orchestrator) send(ctx context.Context, newsletterID uuid.UUID, requireStatus string) error {
	if !o.claim(newsletterID) {
		return ErrAlreadyRunning
	}
	defer o.release(newsletterID)

	o.metrics.SendsInFlight.Inc()
	defer o.metrics.SendsInFlight.Dec()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "newsletter_id", Value: newsletterID},
	)

	newsletter, err := o.store.GetNewsletterByID(ctx, newsletterID)
	if err != nil {
		return fmt.Errorf("failed to get newsletter: %w", err)
	}
	if !sendable(newsletter.Status) || (requireStatus != "" && newsletter.Status != requireStatus) {
		return fmt.Errorf("%w: %s", ErrNotSendable, newsletter.Status)
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "topic", Value: newsletter.Slug},
	)

	tpl, err := o.resolveTemplate(ctx, newsletter)
	if err != nil {
		return err
	}

	shared := content.RenderShared(newsletter.MarkdownContent, o.cfg.BaseURL)
	if err := o.store.SetNewsletterRenderedHTML(ctx, newsletterID, shared); err != nil {
		return fmt.Errorf("failed to store rendered html: %w", err)
	}
	if err := o.store.SetNewsletterStatus(ctx, newsletterID, store.NewsletterStatusSending); err != nil {
		return fmt.Errorf("failed to mark newsletter sending: %w", err)
	}

	body, err := o.shortenLinks(ctx, newsletterID, shared)
	if err != nil {
		return err
	}

	recipients, err := o.store.ListEligibleSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list eligible subscribers: %w", err)
	}
	if err := o.store.SetNewsletterTotal(ctx, newsletterID, len(recipients)); err != nil {
		return fmt.Errorf("failed to set newsletter total: %w", err)
	}
	for _, r := range recipients {
		if err := o.store.EnsurePendingSend(ctx, newsletterID, r.ID); err != nil {
			return fmt.Errorf("failed to create send record: %w", err)
		}
	}

	o.logger.Info(ctx, fmt.Sprintf("sending newsletter to %d subscribers", len(recipients)))

	campaign := content.Campaign{
		BaseURL:  o.cfg.BaseURL,
		Title:    newsletter.Title,
		Slug:     newsletter.Slug,
		HTML:     body,
		Template: tpl,
	}

	limit := rate.Inf
	if o.cfg.SendDelay > 0 {
		limit = rate.Every(o.cfg.SendDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var sent, failed, attempted int
	stoppedAt := ""

	for _, r := range recipients {
		// Paused or finalized by an admin.
		status, err := o.store.GetNewsletterStatus(ctx, newsletterID)
		if err != nil {
			return fmt.Errorf("failed to check newsletter status: %w", err)
		}
		if status != store.NewsletterStatusSending {
			stoppedAt = status
			break
		}

		sendStatus, err := o.store.GetSendStatus(ctx, newsletterID, r.ID)
		if err != nil {
			return fmt.Errorf("failed to get send record: %w", err)
		}
		if sendStatus == store.SendStatusSent {
			sent++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("send interrupted: %w", err)
		}

		attempted++
		if o.deliver(ctx, newsletterID, campaign, r) {
			sent++
		} else {
			failed++
		}

		if err := o.store.UpdateNewsletterCounts(ctx, newsletterID, sent, failed); err != nil {
			return fmt.Errorf("failed to update newsletter counts: %w", err)
		}
	}

	if err := o.store.UpdateNewsletterCounts(ctx, newsletterID, sent, failed); err != nil {
		return fmt.Errorf("failed to update newsletter counts: %w", err)
	}

	if stoppedAt != "" {
		o.logger.Info(ctx, fmt.Sprintf("newsletter %s after %d sent, %d failed", stoppedAt, sent, failed))
		return nil
	}

	final := store.NewsletterStatusSent
	if attempted > 0 && failed == attempted && sent == 0 {
		final = store.NewsletterStatusFailed
	}
	if err := o.store.SetNewsletterStatus(ctx, newsletterID, final); err != nil {
		return fmt.Errorf("failed to finalize newsletter: %w", err)
	}

	o.logger.Info(ctx, fmt.Sprintf("newsletter %s: %d sent, %d failed", final, sent, failed))
	return nil
}

func (o *Orchestrator) resolveTemplate(ctx context.Context, n store.Newsletter) (*content.Template, error) {
	if n.TemplateID != nil {
		t, err := o.store.GetTemplateByID(ctx, *n.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		return content.ParseTemplate(t.HTMLBody), nil
	}

	t, err := o.store.GetTemplateBySlug(ctx, o.cfg.DefaultTemplateSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDefaultTemplateMissing, o.cfg.DefaultTemplateSlug)
		}
		return nil, fmt.Errorf("failed to get default template: %w", err)
	}
	return content.ParseTemplate(t.HTMLBody), nil
}

// shortenLinks shortens the campaign links, reusing mappings stored by an
// earlier pass. Storing new mappings is best effort.
func (o *Orchestrator) shortenLinks(ctx context.Context, newsletterID uuid.UUID, html string) (string, error) {
	if o.shortener == nil {
		return html, nil
	}

	stored, err := o.store.ListNewsletterLinks(ctx, newsletterID)
	if err != nil {
		return "", fmt.Errorf("failed to list newsletter links: %w", err)
	}
	known := make(map[string]string, len(stored))
	for _, l := range stored {
		known[l.OriginalURL] = l.ShortURL
	}

	out, links := content.ShortenLinks(ctx, html, o.shortener, known, o.logger)
	for _, l := range links {
		if _, ok := known[l.OriginalURL]; ok {
			continue
		}
		if err := o.store.UpsertNewsletterLink(ctx, newsletterID, l.OriginalURL, l.ShortURL); err != nil {
			o.logger.WarnWithError(ctx, "failed to store newsletter link", err)
		}
	}
	return out, nil
}

// deliver personalizes and sends to one subscriber and records the outcome.
// It reports whether the message was accepted.
func (o *Orchestrator) deliver(ctx context.Context, newsletterID uuid.UUID, campaign content.Campaign, sub store.Subscriber) bool {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "subscriber_id", Value: sub.ID},
		observability.Field{Key: "ucode", Value: sub.Ucode},
	)

	msg, err := content.Personalize(campaign, content.Recipient{
		Email:      sub.Email,
		Name:       sub.Name,
		Ucode:      sub.Ucode,
		SecretCode: sub.SecretCode,
	})
	if err != nil {
		o.metrics.EmailsFailed.WithLabelValues(observability.FailureTemplate).Inc()
		o.recordFailure(ctx, newsletterID, sub.ID, err)
		return false
	}

	err = o.transport.Send(ctx, mail.Message{
		To:      sub.Email,
		Subject: campaign.Title,
		HTML:    msg.HTML,
		Headers: msg.Headers,
	})
	if err != nil {
		reason := observability.FailureTransient
		if mail.IsHardBounce(err) {
			reason = observability.FailureBounce
			if err := o.store.MarkSubscriberBounced(ctx, sub.ID); err != nil {
				o.logger.Error(ctx, "failed to mark subscriber bounced", err)
			}
		}
		o.metrics.EmailsFailed.WithLabelValues(reason).Inc()
		o.recordFailure(ctx, newsletterID, sub.ID, err)
		return false
	}

	o.metrics.EmailsSent.Inc()
	if err := o.store.MarkSendSent(ctx, newsletterID, sub.ID); err != nil {
		o.logger.Error(ctx, "failed to mark send as sent", err)
	}
	return true
}

func (o *Orchestrator) recordFailure(ctx context.Context, newsletterID, subscriberID uuid.UUID, cause error) {
	o.logger.WarnWithError(ctx, "newsletter delivery failed", cause)
	if err := o.store.MarkSendFailed(ctx, newsletterID, subscriberID, cause.Error()); err != nil {
		o.logger.Error(ctx, "failed to mark send as failed", err)
	}
}
