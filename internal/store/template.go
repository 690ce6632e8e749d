package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultTemplateHTML is seeded under the default template slug.
const DefaultTemplateHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ title }}</title>
</head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:Helvetica,Arial,sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
<tr><td align="center" style="padding:24px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;background:#ffffff;">
<tr><td style="padding:32px;color:#18181b;line-height:1.6;">
<h1 style="margin-top:0;">{{ title }}</h1>
{{ content }}
</td></tr>
<tr><td style="padding:16px 32px;color:#71717a;font-size:12px;">
<a href="{{ web_url }}">View in browser</a> &middot; <a href="{{ unsubscribe_url }}">Unsubscribe</a>
</td></tr>
</table>
</td></tr>
</table>
{{ tracking_pixel }}
</body>
</html>`

const sqlSeedDefaultTemplate = `
INSERT INTO newsletter_templates (name, slug, description, html_body, created_by)
VALUES ('Default', $1, 'Built-in newsletter layout', $2, 'system')
ON CONFLICT (slug) DO NOTHING
`

// TemplateParams holds the editable fields of a template
type TemplateParams struct {
	Name        string
	Slug        string
	Description string
	HTMLBody    string
}

const templateColumns = `id, name, slug, description, html_body, created_by, created_at, updated_at`

func (s *Store) getTemplate(ctx context.Context, op, query string, args ...interface{}) (NewsletterTemplate, error) {
	var t NewsletterTemplate
	err := s.db.GetContext(ctx, &t, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewsletterTemplate{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return NewsletterTemplate{}, ErrAlreadyExists
		}
		return NewsletterTemplate{}, fmt.Errorf("failed to %s: %w", op, err)
	}
	return t, nil
}

const sqlCreateTemplate = `
INSERT INTO newsletter_templates (name, slug, description, html_body, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + templateColumns

func (s *Store) CreateTemplate(ctx context.Context, params TemplateParams, createdBy string) (NewsletterTemplate, error) {
	return s.getTemplate(ctx, "create template", sqlCreateTemplate,
		params.Name, params.Slug, params.Description, params.HTMLBody, createdBy)
}

const sqlGetTemplateByID = `SELECT ` + templateColumns + ` FROM newsletter_templates WHERE id = $1`

func (s *Store) GetTemplateByID(ctx context.Context, id uuid.UUID) (NewsletterTemplate, error) {
	return s.getTemplate(ctx, "get template by id", sqlGetTemplateByID, id)
}

const sqlGetTemplateBySlug = `SELECT ` + templateColumns + ` FROM newsletter_templates WHERE slug = $1`

func (s *Store) GetTemplateBySlug(ctx context.Context, slug string) (NewsletterTemplate, error) {
	return s.getTemplate(ctx, "get template by slug", sqlGetTemplateBySlug, slug)
}

const sqlListTemplates = `SELECT ` + templateColumns + ` FROM newsletter_templates ORDER BY name ASC`

func (s *Store) ListTemplates(ctx context.Context) ([]NewsletterTemplate, error) {
	templates := []NewsletterTemplate{}
	if err := s.db.SelectContext(ctx, &templates, sqlListTemplates); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

const sqlUpdateTemplate = `
UPDATE newsletter_templates
SET name = $2, slug = $3, description = $4, html_body = $5, updated_at = NOW()
WHERE id = $1
RETURNING ` + templateColumns

func (s *Store) UpdateTemplate(ctx context.Context, id uuid.UUID, params TemplateParams) (NewsletterTemplate, error) {
	return s.getTemplate(ctx, "update template", sqlUpdateTemplate,
		id, params.Name, params.Slug, params.Description, params.HTMLBody)
}

const sqlDeleteTemplate = `DELETE FROM newsletter_templates WHERE id = $1`

func (s *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "delete template", sqlDeleteTemplate, id)
}
