package content

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/osteele/liquid"

	"newsletter-server/internal/security"
)

// RecipientNamePlaceholder is replaced with each subscriber's display name.
const RecipientNamePlaceholder = "%recipient_name%"

const (
	publicRecipientLabel  = "Subscriber"
	previewRecipientName  = "Jane Doe"
	previewPixelComment   = "<!-- tracking pixel placeholder -->"
	placeholderURL        = "#"
	listUnsubscribePost   = "List-Unsubscribe=One-Click"
	headerListUnsubscribe = "List-Unsubscribe"
	headerListUnsubPost   = "List-Unsubscribe-Post"
)

var ErrTemplate = errors.New("template error")

var engine = liquid.NewEngine()

// Slots are the values a newsletter template can reference.
type Slots struct {
	Content        string
	Title          string
	TrackingPixel  string
	UnsubscribeURL string
	BaseURL        string
	WebURL         string
}

func (s Slots) bindings() liquid.Bindings {
	return liquid.Bindings{
		"content":         s.Content,
		"title":           s.Title,
		"tracking_pixel":  s.TrackingPixel,
		"unsubscribe_url": s.UnsubscribeURL,
		"base_url":        s.BaseURL,
		"web_url":         s.WebURL,
	}
}

// Template is a parsed newsletter shell. Parse errors are kept and reported
// by Merge so a broken template fails each recipient instead of the campaign.
type Template struct {
	tpl *liquid.Template
	err error
}

// ParseTemplate parses a template body with {{ slot }} placeholders.
func ParseTemplate(src string) *Template {
	tpl, err := engine.ParseString(src)
	if err != nil {
		return &Template{err: fmt.Errorf("%w: %s", ErrTemplate, err.Error())}
	}
	return &Template{tpl: tpl}
}

// Err returns the parse error, if any.
func (t *Template) Err() error {
	return t.err
}

// Merge renders the template with the given slots.
func (t *Template) Merge(slots Slots) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	out, err := t.tpl.RenderString(slots.bindings())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplate, err.Error())
	}
	return out, nil
}

// Recipient is the subscriber data personalization needs.
type Recipient struct {
	Email      string
	Name       string
	Ucode      string
	SecretCode string
}

// Campaign holds the artifacts shared by every recipient of one send.
type Campaign struct {
	BaseURL  string
	Title    string
	Slug     string
	HTML     string
	Template *Template
}

// Message is the final per-recipient document.
type Message struct {
	HTML    string
	Headers map[string]string
}

// Personalize runs the per-recipient phase: click tracking, name substitution,
// open pixel, template merge and List-Unsubscribe headers.
func Personalize(c Campaign, r Recipient) (Message, error) {
	body := RewriteLinksForTracking(c.HTML, c.BaseURL, r.Ucode, c.Slug, r.SecretCode)
	body = ReplaceRecipientName(body, r.Name)

	openHash := security.ComputeOpenHash(r.SecretCode, r.Ucode, c.Slug, "")
	adminLink := security.ComputeAdminLink(r.SecretCode, r.Email)
	unsubscribeURL := UnsubscribeURL(c.BaseURL, adminLink, c.Slug)

	out, err := c.Template.Merge(Slots{
		Content:        body,
		Title:          c.Title,
		TrackingPixel:  BuildTrackingPixel(c.BaseURL, r.Ucode, c.Slug, openHash),
		UnsubscribeURL: unsubscribeURL,
		BaseURL:        c.BaseURL,
		WebURL:         WebURL(c.BaseURL, c.Slug),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		HTML:    out,
		Headers: ListUnsubscribeHeaders(OneClickURL(c.BaseURL, adminLink, c.Slug), unsubscribeURL),
	}, nil
}

// RenderPublic renders a sent campaign for the public archive: generic name,
// no tracking, placeholder unsubscribe link.
func RenderPublic(baseURL, title, slug, markdown string, tpl *Template) (string, error) {
	body := ReplaceRecipientName(RenderShared(markdown, baseURL), publicRecipientLabel)
	return tpl.Merge(Slots{
		Content:        body,
		Title:          title,
		UnsubscribeURL: placeholderURL,
		BaseURL:        baseURL,
		WebURL:         WebURL(baseURL, slug),
	})
}

// RenderPreview renders a draft for admins with a sample recipient.
func RenderPreview(baseURL, title, markdown string, tpl *Template) (string, error) {
	body := ReplaceRecipientName(RenderShared(markdown, baseURL), previewRecipientName)
	return tpl.Merge(Slots{
		Content:        body,
		Title:          title,
		TrackingPixel:  previewPixelComment,
		UnsubscribeURL: placeholderURL,
		BaseURL:        baseURL,
		WebURL:         placeholderURL,
	})
}

// ReplaceRecipientName substitutes the placeholder with the HTML-escaped name.
func ReplaceRecipientName(htmlDoc, name string) string {
	return strings.ReplaceAll(htmlDoc, RecipientNamePlaceholder, html.EscapeString(name))
}

// BuildTrackingPixel returns the invisible 1x1 open-tracking image tag.
func BuildTrackingPixel(baseURL, ucode, topic, openHash string) string {
	pixelURL := fmt.Sprintf("%s/r/o?ucode=%s&topic=%s&hash=%s",
		baseURL,
		url.QueryEscape(ucode),
		url.QueryEscape(topic),
		url.QueryEscape(openHash),
	)
	return `<img src="` + pixelURL + `" width="1" height="1" alt="" style="border:0;width:1px;height:1px;" />`
}

// ClickTrackingURL builds the /r/c redirect for one link.
func ClickTrackingURL(baseURL, ucode, topic, hash, target string) string {
	return fmt.Sprintf("%s/r/c?ucode=%s&topic=%s&hash=%s&url=%s",
		baseURL,
		url.QueryEscape(ucode),
		url.QueryEscape(topic),
		url.QueryEscape(hash),
		url.QueryEscape(target),
	)
}

// UnsubscribeURL is the subscription management page for a subscriber.
func UnsubscribeURL(baseURL, adminLink, slug string) string {
	return fmt.Sprintf("%s/manage/%s?from=%s", baseURL, adminLink, url.QueryEscape(slug))
}

// OneClickURL is the RFC 8058 POST endpoint.
func OneClickURL(baseURL, adminLink, slug string) string {
	return fmt.Sprintf("%s/unsubscribe/%s?from=%s", baseURL, adminLink, url.QueryEscape(slug))
}

// WebURL is the public archive page of a campaign.
func WebURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/newsletters/%s", baseURL, slug)
}

// ListUnsubscribeHeaders builds the RFC 2369 / RFC 8058 headers.
func ListUnsubscribeHeaders(oneClickURL, unsubscribeURL string) map[string]string {
	return map[string]string{
		headerListUnsubscribe: fmt.Sprintf("<%s>, <%s>", oneClickURL, unsubscribeURL),
		headerListUnsubPost:   listUnsubscribePost,
	}
}
