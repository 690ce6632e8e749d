package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsletter-server/internal/audit"
	"newsletter-server/internal/content"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

// TemplateStore defines the database operations required by TemplateProcessor
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]store.NewsletterTemplate, error)
	GetTemplateByID(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error)
	CreateTemplate(ctx context.Context, params store.TemplateParams, createdBy string) (store.NewsletterTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, params store.TemplateParams) (store.NewsletterTemplate, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

// AuditLogger records admin actions
type AuditLogger interface {
	Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string)
}

var (
	ErrTemplateNotFound         = errors.New("template not found")
	ErrInvalidSlug              = errors.New("slug must be 1-100 lowercase letters, digits or hyphens")
	ErrSlugExists               = errors.New("template slug already exists")
	ErrInvalidTemplate          = errors.New("template does not parse")
	ErrDefaultTemplateProtected = errors.New("the default template cannot be deleted or renamed")
)

const maxSlugLength = 100

var slugRe = regexp.MustCompile(`^[a-z0-9-]{1,100}$`)

type TemplateProcessor struct {
	store       TemplateStore
	audit       AuditLogger
	defaultSlug string
	logger      *observability.Logger
	now         func() time.Time
}

func New(store TemplateStore, audit AuditLogger, defaultSlug string, logger *observability.Logger) TemplateProcessor {
	return TemplateProcessor{
		store:       store,
		audit:       audit,
		defaultSlug: defaultSlug,
		logger:      logger,
		now:         time.Now,
	}
}

// Actor identifies the admin performing an action
type Actor struct {
	Email string
	IP    string
}

// TemplateRequest holds the editable fields of a template
type TemplateRequest struct {
	Name        string
	Slug        string
	Description string
	HTMLBody    string
}

// ValidSlug reports whether slug may name a template.
func ValidSlug(slug string) bool {
	return slugRe.MatchString(slug)
}

func validate(req TemplateRequest) error {
	if !ValidSlug(req.Slug) {
		return ErrInvalidSlug
	}
	if err := content.ParseTemplate(req.HTMLBody).Err(); err != nil {
		return errors.Join(ErrInvalidTemplate, err)
	}
	return nil
}

func (p *TemplateProcessor) getTemplate(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error) {
	t, err := p.store.GetTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.NewsletterTemplate{}, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get template", err)
		return store.NewsletterTemplate{}, err
	}
	return t, nil
}

// ListTemplates returns every template ordered by name
func (p *TemplateProcessor) ListTemplates(ctx context.Context) ([]store.NewsletterTemplate, error) {
	templates, err := p.store.ListTemplates(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list templates", err)
		return nil, err
	}
	return templates, nil
}

// GetTemplate returns one template
func (p *TemplateProcessor) GetTemplate(ctx context.Context, id uuid.UUID) (store.NewsletterTemplate, error) {
	return p.getTemplate(ctx, id)
}

// CreateTemplate validates and stores a new template
func (p *TemplateProcessor) CreateTemplate(ctx context.Context, actor Actor, req TemplateRequest) (store.NewsletterTemplate, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "template_slug", Value: req.Slug},
	)

	if err := validate(req); err != nil {
		return store.NewsletterTemplate{}, err
	}

	t, err := p.store.CreateTemplate(ctx, store.TemplateParams(req), actor.Email)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.NewsletterTemplate{}, ErrSlugExists
		}
		p.logger.Error(ctx, "failed to create template", err)
		return store.NewsletterTemplate{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionTemplateCreate, map[string]any{
		"template_id": t.ID.String(),
		"slug":        t.Slug,
	}, actor.IP)
	return t, nil
}

// UpdateTemplate validates and replaces a template's fields
func (p *TemplateProcessor) UpdateTemplate(ctx context.Context, actor Actor, id uuid.UUID, req TemplateRequest) (store.NewsletterTemplate, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "template_id", Value: id},
	)

	if err := validate(req); err != nil {
		return store.NewsletterTemplate{}, err
	}

	existing, err := p.getTemplate(ctx, id)
	if err != nil {
		return store.NewsletterTemplate{}, err
	}
	if existing.Slug == p.defaultSlug && req.Slug != existing.Slug {
		return store.NewsletterTemplate{}, ErrDefaultTemplateProtected
	}

	t, err := p.store.UpdateTemplate(ctx, id, store.TemplateParams(req))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.NewsletterTemplate{}, ErrTemplateNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return store.NewsletterTemplate{}, ErrSlugExists
		}
		p.logger.Error(ctx, "failed to update template", err)
		return store.NewsletterTemplate{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionTemplateUpdate, map[string]any{
		"template_id": id.String(),
		"slug":        t.Slug,
	}, actor.IP)
	return t, nil
}

// DeleteTemplate removes a template. Newsletters using it fall back to the
// default template.
func (p *TemplateProcessor) DeleteTemplate(ctx context.Context, actor Actor, id uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "template_id", Value: id},
	)

	t, err := p.getTemplate(ctx, id)
	if err != nil {
		return err
	}
	if t.Slug == p.defaultSlug {
		return ErrDefaultTemplateProtected
	}

	if err := p.store.DeleteTemplate(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to delete template", err)
		return err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionTemplateDelete, map[string]any{
		"template_id": id.String(),
		"slug":        t.Slug,
	}, actor.IP)
	return nil
}

// duplicateSlug is "{slug}-copy-{unix}", with the base cut so the result
// stays a valid slug.
func duplicateSlug(slug string, now time.Time) string {
	suffix := "-copy-" + strconv.FormatInt(now.Unix(), 10)
	if len(slug)+len(suffix) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength-len(suffix)], "-")
	}
	return slug + suffix
}

// DuplicateTemplate copies a template under a new name and slug
func (p *TemplateProcessor) DuplicateTemplate(ctx context.Context, actor Actor, id uuid.UUID) (store.NewsletterTemplate, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "admin_email", Value: actor.Email},
		observability.Field{Key: "template_id", Value: id},
	)

	src, err := p.getTemplate(ctx, id)
	if err != nil {
		return store.NewsletterTemplate{}, err
	}

	t, err := p.store.CreateTemplate(ctx, store.TemplateParams{
		Name:        src.Name + " (copy)",
		Slug:        duplicateSlug(src.Slug, p.now()),
		Description: src.Description,
		HTMLBody:    src.HTMLBody,
	}, actor.Email)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.NewsletterTemplate{}, ErrSlugExists
		}
		p.logger.Error(ctx, "failed to duplicate template", err)
		return store.NewsletterTemplate{}, err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionTemplateDuplicate, map[string]any{
		"source_id":   id.String(),
		"template_id": t.ID.String(),
	}, actor.IP)
	return t, nil
}
