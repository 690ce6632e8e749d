package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/audit"
	"newsletter-server/internal/content"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

// NewsletterStore defines the database operations required by NewsletterProcessor
type NewsletterStore interface {
	ListNewsletters(ctx context.Context) ([]store.Newsletter, error)
	CreateNewsletter(ctx context.Context, params store.CreateNewsletterParams) (store.Newsletter, error)
	GetNewsletterByID(ctx context.Context, id uuid.UUID) (store.Newsletter, error)
	UpdateDraftNewsletter(ctx context.Context, id uuid.UUID, params store.UpdateNewsletterParams) (store.Newsletter, error)
	DeleteDraftNewsletter(ctx context.Context, id uuid.UUID) error
	ScheduleNewsletter(ctx context.Context, id uuid.UUID, at time.Time) (store.Newsletter, error)
	CancelScheduledNewsletter(ctx context.Context, id uuid.UUID) error
	PauseSendingNewsletter(ctx context.Context, id uuid.UUID) error
	FinalizePausedNewsletter(ctx context.Context, id uuid.UUID) error
	GetNewsletterProgress(ctx context.Context, id uuid.UUID) (store.NewsletterProgress, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error)
	GetTemplateBySlug(ctx context.Context, slug string) (store.NewsletterTemplate, error)
	GetNewsletterEventStats(ctx context.Context, topic string) (store.NewsletterEventStats, error)
	ListURLClicks(ctx context.Context, topic string) ([]store.URLClicks, error)
	CountUnsubscribes(ctx context.Context, newsletterID uuid.UUID) (int, error)
	ListNewsletterLinks(ctx context.Context, newsletterID uuid.UUID) ([]store.NewsletterLink, error)
}

// Launcher starts a background send. The send is dropped if the newsletter
// left fromStatus before it starts.
type Launcher interface {
	Launch(newsletterID uuid.UUID, fromStatus string)
}

// SendTracker reports whether a send run of a newsletter is still going on
// in this process
type SendTracker interface {
	IsRunning(newsletterID uuid.UUID) bool
}

// ClickCounter reads click totals from the link shortener
type ClickCounter interface {
	GetClicks(ctx context.Context, shortURL string) (uint64, error)
}

// AuditLogger records admin actions
type AuditLogger interface {
	Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string)
}

var (
	ErrNewsletterNotFound  = errors.New("newsletter not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrNotEditable         = errors.New("only draft newsletters can be edited")
	ErrCannotSend          = errors.New("newsletter cannot be sent in its current status")
	ErrCannotSchedule      = errors.New("only draft newsletters can be scheduled")
	ErrCannotCancel        = errors.New("newsletter cannot be cancelled in its current status")
	ErrInvalidScheduleTime = errors.New("scheduled time must be in the future")
	ErrSlugExists          = errors.New("newsletter slug already exists")
	ErrSendInProgress      = errors.New("newsletter send is still finishing")
)

// noOpenRate is shown instead of a percentage before anything was sent.
const noOpenRate = "—"

// Config holds the settings NewsletterProcessor needs
type Config struct {
	BaseURL             string
	DefaultTemplateSlug string
}

type NewsletterProcessor struct {
	store    NewsletterStore
	launcher Launcher
	tracker  SendTracker
	clicks   ClickCounter
	audit    AuditLogger
	cfg      Config
	logger   *observability.Logger
	now      func() time.Time
}

// New creates a processor. clicks may be nil when no shortener is configured.
func New(
	store NewsletterStore,
	launcher Launcher,
	tracker SendTracker,
	clicks ClickCounter,
	audit AuditLogger,
	cfg Config,
	logger *observability.Logger,
) NewsletterProcessor {
	return NewsletterProcessor{
		store:    store,
		launcher: launcher,
		tracker:  tracker,
		clicks:   clicks,
		audit:    audit,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Actor identifies the admin performing an action
type Actor struct {
	Email string
	IP    string
}

// CreateNewsletterRequest represents a request to create a draft
type CreateNewsletterRequest struct {
	Title           string
	MarkdownContent string
	TemplateID      *uuid.UUID
}

// UpdateNewsletterRequest represents a request to edit a draft
type UpdateNewsletterRequest struct {
	Title           string
	MarkdownContent string
	TemplateID      *uuid.UUID
}

// LinkStats is the click summary for one link
type LinkStats struct {
	URL          string `json:"url"`
	Text         string `json:"text"`
	Clicks       int    `json:"clicks"`
	UniqueClicks int    `json:"unique_clicks"`
}

// ShortLinkStats is the shortener's own counter for one link
type ShortLinkStats struct {
	OriginalURL string `json:"original_url"`
	ShortURL    string `json:"short_url"`
	Clicks      uint64 `json:"clicks"`
}

// NewsletterStats summarises engagement for one newsletter
type NewsletterStats struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Status           string           `json:"status"`
	SentCount        int              `json:"sent_count"`
	FailedCount      int              `json:"failed_count"`
	TotalCount       int              `json:"total_count"`
	UniqueOpens      int              `json:"unique_opens"`
	OpenRate         string           `json:"open_rate"`
	TotalClicks      int              `json:"total_clicks"`
	UniqueClicks     int              `json:"unique_clicks"`
	UnsubscribeCount int              `json:"unsubscribe_count"`
	Links            []LinkStats      `json:"links"`
	ShortLinks       []ShortLinkStats `json:"short_links,omitempty"`
}

func (p *NewsletterProcessor) getNewsletter(ctx context.Context, id uuid.UUID) (store.Newsletter, error) {
	n, err := p.store.GetNewsletterByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Newsletter{}, ErrNewsletterNotFound
		}
		p.logger.Error(ctx, "failed to get newsletter", err)
		return store.Newsletter{}, err
	}
	return n, nil
}

func (p *NewsletterProcessor) checkTemplate(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := p.store.GetTemplateByID(ctx, *id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get template", err)
		return err
	}
	return nil
}

// ListNewsletters returns every newsletter, newest first
func (p *NewsletterProcessor) ListNewsletters(ctx context.Context) ([]store.Newsletter, error) {
	newsletters, err := p.store.ListNewsletters(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list newsletters", err)
		return nil, err
	}
	return newsletters, nil
}

// CreateNewsletter creates a draft with a slug derived from the title
func (p *NewsletterProcessor) CreateNewsletter(ctx context.Context, actor Actor, req CreateNewsletterRequest) (store.Newsletter, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "admin_email", Value: actor.Email})

	if err := p.checkTemplate(ctx, req.TemplateID); err != nil {
		return store.Newsletter{}, err
	}

	n, err := p.store.CreateNewsletter(ctx, store.CreateNewsletterParams{
		Title:           req.Title,
		Slug:            content.GenerateSlug(req.Title, p.now()),
		MarkdownContent: req.MarkdownContent,
		TemplateID:      req.TemplateID,
		CreatedBy:       actor.Email,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.Newsletter{}, ErrSlugExists
		}
		p.logger.Error(ctx, "failed to create newsletter", err)
		return store.Newsletter{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterCreate, map[string]any{
		"newsletter_id": n.ID.String(),
		"title":         n.Title,
	}, actor.IP)
	return n, nil
}

// GetNewsletter returns one newsletter
func (p *NewsletterProcessor) GetNewsletter(ctx context.Context, id uuid.UUID) (store.Newsletter, error) {
	return p.getNewsletter(ctx, id)
}

// UpdateNewsletter edits a draft
func (p *NewsletterProcessor) UpdateNewsletter(ctx context.Context, actor Actor, id uuid.UUID, req UpdateNewsletterRequest) (store.Newsletter, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "newsletter_id", Value: id},
	)

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return store.Newsletter{}, err
	}
	if n.Status != store.NewsletterStatusDraft {
		return store.Newsletter{}, ErrNotEditable
	}
	if err := p.checkTemplate(ctx, req.TemplateID); err != nil {
		return store.Newsletter{}, err
	}

	updated, err := p.store.UpdateDraftNewsletter(ctx, id, store.UpdateNewsletterParams{
		Title:           req.Title,
		MarkdownContent: req.MarkdownContent,
		TemplateID:      req.TemplateID,
	})
	if err != nil {
		// The draft left draft status between the read and the write.
		if errors.Is(err, store.ErrNotFound) {
			return store.Newsletter{}, ErrNotEditable
		}
		p.logger.Error(ctx, "failed to update newsletter", err)
		return store.Newsletter{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterUpdate, map[string]any{"newsletter_id": id.String()}, actor.IP)
	return updated, nil
}

// DeleteNewsletter removes a draft
func (p *NewsletterProcessor) DeleteNewsletter(ctx context.Context, actor Actor, id uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "newsletter_id", Value: id},
	)

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return err
	}
	if n.Status != store.NewsletterStatusDraft {
		return ErrNotEditable
	}

	if err := p.store.DeleteDraftNewsletter(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotEditable
		}
		p.logger.Error(ctx, "failed to delete newsletter", err)
		return err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterDelete, map[string]any{
		"newsletter_id": id.String(),
		"title":         n.Title,
	}, actor.IP)
	return nil
}

func (p *NewsletterProcessor) resolveTemplate(ctx context.Context, n store.Newsletter) (*content.Template, error) {
	var (
		t   store.NewsletterTemplate
		err error
	)
	if n.TemplateID != nil {
		t, err = p.store.GetTemplateByID(ctx, *n.TemplateID)
	} else {
		t, err = p.store.GetTemplateBySlug(ctx, p.cfg.DefaultTemplateSlug)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get template", err)
		return nil, err
	}
	return content.ParseTemplate(t.HTMLBody), nil
}

// PreviewNewsletter renders a newsletter for a sample recipient
func (p *NewsletterProcessor) PreviewNewsletter(ctx context.Context, id uuid.UUID) (string, error) {
	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return "", err
	}
	tpl, err := p.resolveTemplate(ctx, n)
	if err != nil {
		return "", err
	}
	return content.RenderPreview(p.cfg.BaseURL, n.Title, n.MarkdownContent, tpl)
}

// SendNewsletter starts sending a draft, scheduled or paused newsletter in
// the background. A paused newsletter whose last run has not returned yet
// is refused with ErrSendInProgress.
func (p *NewsletterProcessor) SendNewsletter(ctx context.Context, actor Actor, id uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "newsletter_id", Value: id},
	)

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return err
	}
	switch n.Status {
	case store.NewsletterStatusDraft, store.NewsletterStatusScheduled, store.NewsletterStatusPaused:
	default:
		return ErrCannotSend
	}
	if p.tracker.IsRunning(id) {
		return ErrSendInProgress
	}

	p.launcher.Launch(id, n.Status)
	p.logger.Info(ctx, "newsletter send launched")

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterSend, map[string]any{
		"newsletter_id": id.String(),
		"from_status":   n.Status,
	}, actor.IP)
	return nil
}

// ScheduleNewsletter schedules a draft for a future time
func (p *NewsletterProcessor) ScheduleNewsletter(ctx context.Context, actor Actor, id uuid.UUID, at time.Time) (store.Newsletter, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "newsletter_id", Value: id},
	)

	if !at.After(p.now()) {
		return store.Newsletter{}, ErrInvalidScheduleTime
	}

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return store.Newsletter{}, err
	}
	if n.Status != store.NewsletterStatusDraft {
		return store.Newsletter{}, ErrCannotSchedule
	}

	scheduled, err := p.store.ScheduleNewsletter(ctx, id, at)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Newsletter{}, ErrCannotSchedule
		}
		p.logger.Error(ctx, "failed to schedule newsletter", err)
		return store.Newsletter{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterSchedule, map[string]any{
		"newsletter_id": id.String(),
		"scheduled_at":  at.UTC().Format(time.RFC3339),
	}, actor.IP)
	return scheduled, nil
}

// CancelNewsletter returns a scheduled newsletter to draft, pauses a sending
// one and accepts a paused one as sent. It returns the new status.
func (p *NewsletterProcessor) CancelNewsletter(ctx context.Context, actor Actor, id uuid.UUID) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "newsletter_id", Value: id},
	)

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return "", err
	}

	var (
		cancel    func(context.Context, uuid.UUID) error
		newStatus string
	)
	switch n.Status {
	case store.NewsletterStatusScheduled:
		cancel, newStatus = p.store.CancelScheduledNewsletter, store.NewsletterStatusDraft
	case store.NewsletterStatusSending:
		cancel, newStatus = p.store.PauseSendingNewsletter, store.NewsletterStatusPaused
	case store.NewsletterStatusPaused:
		// The paused run may still be delivering its last recipient.
		if p.tracker.IsRunning(id) {
			return "", ErrSendInProgress
		}
		cancel, newStatus = p.store.FinalizePausedNewsletter, store.NewsletterStatusSent
	default:
		return "", ErrCannotCancel
	}

	if err := cancel(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrCannotCancel
		}
		p.logger.Error(ctx, "failed to cancel newsletter", err)
		return "", err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionNewsletterCancel, map[string]any{
		"newsletter_id": id.String(),
		"from_status":   n.Status,
		"to_status":     newStatus,
	}, actor.IP)
	return newStatus, nil
}

// GetProgress returns the send counters for polling
func (p *NewsletterProcessor) GetProgress(ctx context.Context, id uuid.UUID) (store.NewsletterProgress, error) {
	progress, err := p.store.GetNewsletterProgress(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.NewsletterProgress{}, ErrNewsletterNotFound
		}
		p.logger.Error(ctx, "failed to get newsletter progress", err)
		return store.NewsletterProgress{}, err
	}
	return progress, nil
}

// FormatOpenRate renders unique opens as a share of sent messages.
func FormatOpenRate(uniqueOpens, sent int) string {
	if sent <= 0 {
		return noOpenRate
	}
	return fmt.Sprintf("%.1f%%", float64(uniqueOpens)/float64(sent)*100)
}

// GetStats aggregates tracking events for one newsletter
func (p *NewsletterProcessor) GetStats(ctx context.Context, id uuid.UUID) (NewsletterStats, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "newsletter_id", Value: id})

	n, err := p.getNewsletter(ctx, id)
	if err != nil {
		return NewsletterStats{}, err
	}

	events, err := p.store.GetNewsletterEventStats(ctx, n.Slug)
	if err != nil {
		p.logger.Error(ctx, "failed to get event stats", err)
		return NewsletterStats{}, err
	}
	urlClicks, err := p.store.ListURLClicks(ctx, n.Slug)
	if err != nil {
		p.logger.Error(ctx, "failed to list url clicks", err)
		return NewsletterStats{}, err
	}
	unsubscribes, err := p.store.CountUnsubscribes(ctx, id)
	if err != nil {
		p.logger.Error(ctx, "failed to count unsubscribes", err)
		return NewsletterStats{}, err
	}
	links, err := p.store.ListNewsletterLinks(ctx, id)
	if err != nil {
		p.logger.Error(ctx, "failed to list newsletter links", err)
		return NewsletterStats{}, err
	}

	// Clicks are recorded against the URL in the mail, which is the short
	// one when shortening succeeded. Anchor text is keyed by the original.
	original := make(map[string]string, len(links))
	for _, l := range links {
		original[l.ShortURL] = l.OriginalURL
	}
	var texts map[string]string
	if n.RenderedHTML != nil {
		texts = content.ExtractLinkTexts(*n.RenderedHTML)
	}

	stats := NewsletterStats{
		ID:               n.ID,
		Title:            n.Title,
		Status:           n.Status,
		SentCount:        n.SentCount,
		FailedCount:      n.FailedCount,
		TotalCount:       n.TotalCount,
		UniqueOpens:      events.UniqueOpens,
		OpenRate:         FormatOpenRate(events.UniqueOpens, n.SentCount),
		TotalClicks:      events.TotalClicks,
		UniqueClicks:     events.UniqueClicks,
		UnsubscribeCount: unsubscribes,
		Links:            make([]LinkStats, 0, len(urlClicks)),
	}
	for _, c := range urlClicks {
		url := c.URL
		if o, ok := original[url]; ok {
			url = o
		}
		stats.Links = append(stats.Links, LinkStats{
			URL:          url,
			Text:         texts[url],
			Clicks:       c.TotalClicks,
			UniqueClicks: c.UniqueClicks,
		})
	}

	if p.clicks != nil {
		for _, l := range links {
			count, err := p.clicks.GetClicks(ctx, l.ShortURL)
			if err != nil {
				p.logger.WarnWithError(ctx, "failed to get short link clicks", err)
				continue
			}
			stats.ShortLinks = append(stats.ShortLinks, ShortLinkStats{
				OriginalURL: l.OriginalURL,
				ShortURL:    l.ShortURL,
				Clicks:      count,
			})
		}
	}

	return stats, nil
}
