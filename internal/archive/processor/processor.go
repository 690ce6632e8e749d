package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"newsletter-server/internal/content"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

// ArchiveStore defines the database operations required by ArchiveProcessor
type ArchiveStore interface {
	ListSentNewsletters(ctx context.Context) ([]store.SentNewsletter, error)
	GetSentNewsletterBySlug(ctx context.Context, slug string) (store.Newsletter, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error)
	GetTemplateBySlug(ctx context.Context, slug string) (store.NewsletterTemplate, error)
}

var (
	ErrNewsletterNotFound = errors.New("newsletter not found or not sent yet")
	ErrNoTemplate         = errors.New("no template available to render newsletter")
)

const archiveDateFormat = "2006-01-02"

type ArchiveProcessor struct {
	store       ArchiveStore
	baseURL     string
	defaultSlug string
	logger      *observability.Logger
}

func New(store ArchiveStore, baseURL, defaultSlug string, logger *observability.Logger) ArchiveProcessor {
	return ArchiveProcessor{
		store:       store,
		baseURL:     baseURL,
		defaultSlug: defaultSlug,
		logger:      logger,
	}
}

// Entry is one sent campaign in the public listing
type Entry struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	SentAt string `json:"sent_at"`
	URL    string `json:"url"`
}

// ListSent returns sent campaigns, newest first.
func (p *ArchiveProcessor) ListSent(ctx context.Context) ([]Entry, error) {
	sent, err := p.store.ListSentNewsletters(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list sent newsletters", err)
		return nil, err
	}

	entries := make([]Entry, 0, len(sent))
	for _, n := range sent {
		entries = append(entries, Entry{
			Slug:   n.Slug,
			Title:  n.Title,
			SentAt: n.SentAt.UTC().Format(archiveDateFormat),
			URL:    content.WebURL(p.baseURL, n.Slug),
		})
	}
	return entries, nil
}

// Render returns the public HTML of a sent campaign.
func (p *ArchiveProcessor) Render(ctx context.Context, slug string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "slug", Value: slug})

	n, err := p.store.GetSentNewsletterBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNewsletterNotFound
		}
		p.logger.Error(ctx, "failed to get sent newsletter", err)
		return "", err
	}

	tpl, err := p.template(ctx, n)
	if err != nil {
		return "", err
	}

	out, err := content.RenderPublic(p.baseURL, n.Title, n.Slug, n.MarkdownContent, content.ParseTemplate(tpl.HTMLBody))
	if err != nil {
		p.logger.Error(ctx, "failed to render archived newsletter", err)
		return "", err
	}
	return out, nil
}

// template loads the newsletter's own template, falling back to the default
// one when it has none or it no longer exists.
func (p *ArchiveProcessor) template(ctx context.Context, n store.Newsletter) (store.NewsletterTemplate, error) {
	if n.TemplateID != nil {
		t, err := p.store.GetTemplateByID(ctx, *n.TemplateID)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Error(ctx, "failed to get template", err)
			return store.NewsletterTemplate{}, err
		}
	}

	t, err := p.store.GetTemplateBySlug(ctx, p.defaultSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Error(ctx, "default template missing", err)
			return store.NewsletterTemplate{}, ErrNoTemplate
		}
		p.logger.Error(ctx, "failed to get default template", err)
		return store.NewsletterTemplate{}, err
	}
	return t, nil
}
