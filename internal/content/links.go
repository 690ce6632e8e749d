package content

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"newsletter-server/internal/observability"
	"newsletter-server/internal/security"
)

var (
	anchorHrefRe = regexp.MustCompile(`<a\s[^>]*href\s*=\s*"([^"]+)"`)
	trackableRe  = regexp.MustCompile(`href="(https?://[^"]+)"`)
	anchorTextRe = regexp.MustCompile(`(?s)<a\s[^>]*href="(https?://[^"]+)"[^>]*>(.*?)</a>`)
	stripTagsRe  = regexp.MustCompile(`<[^>]+>`)
)

// Shortener is the slice of the link shortening collaborator the pipeline needs.
type Shortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}

// Link is one original -> short mapping produced for a campaign.
type Link struct {
	OriginalURL string
	ShortURL    string
}

// shortenable reports whether an href should go to the shortener.
func shortenable(href string) bool {
	switch {
	case strings.HasPrefix(href, "mailto:"),
		strings.HasPrefix(href, "tel:"),
		strings.HasPrefix(href, "#"),
		strings.HasPrefix(href, "{{"):
		return false
	}
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// ShortenLinks shortens every distinct absolute anchor href once and rewrites
// all of its occurrences. known holds mappings from an earlier pass of the same
// campaign; those URLs are reused without calling the shortener. A failed
// shorten keeps the original URL and is logged.
//
// The returned links cover every URL that ended up shortened, known ones included.
func ShortenLinks(ctx context.Context, htmlDoc string, shortener Shortener, known map[string]string, logger *observability.Logger) (string, []Link) {
	seen := make(map[string]string)
	var links []Link
	var rawHrefs []string

	for _, m := range anchorHrefRe.FindAllStringSubmatch(htmlDoc, -1) {
		raw := m[1]
		if _, ok := seen[raw]; ok {
			continue
		}
		if !shortenable(raw) {
			continue
		}
		original := html.UnescapeString(raw)

		short, ok := known[original]
		if !ok {
			var err error
			short, err = shortener.Shorten(ctx, original)
			if err != nil {
				logger.WarnWithError(observability.WithFields(ctx,
					observability.Field{Key: "url", Value: original},
				), "failed to shorten link, using original", err)
				seen[raw] = raw
				continue
			}
		}

		seen[raw] = html.EscapeString(short)
		rawHrefs = append(rawHrefs, raw)
		links = append(links, Link{OriginalURL: original, ShortURL: short})
	}

	out := htmlDoc
	for _, raw := range rawHrefs {
		out = strings.ReplaceAll(out, `href="`+raw+`"`, `href="`+seen[raw]+`"`)
	}
	return out, links
}

// RewriteLinksForTracking points every http(s) href at the click redirector with
// a per-subscriber tag over the decoded URL.
func RewriteLinksForTracking(htmlDoc, baseURL, ucode, topic, secretCode string) string {
	return trackableRe.ReplaceAllStringFunc(htmlDoc, func(m string) string {
		original := html.UnescapeString(trackableRe.FindStringSubmatch(m)[1])
		hash := security.ComputeOpenHash(secretCode, ucode, topic, original)
		return fmt.Sprintf(`href="%s"`, ClickTrackingURL(baseURL, ucode, topic, hash, original))
	})
}

// ExtractLinkTexts maps each absolute link in htmlDoc to its first non-empty
// anchor text, tags stripped.
func ExtractLinkTexts(htmlDoc string) map[string]string {
	texts := make(map[string]string)
	for _, m := range anchorTextRe.FindAllStringSubmatch(htmlDoc, -1) {
		url := html.UnescapeString(m[1])
		if _, ok := texts[url]; ok {
			continue
		}
		text := strings.TrimSpace(html.UnescapeString(stripTagsRe.ReplaceAllString(m[2], "")))
		if text != "" {
			texts[url] = text
		}
	}
	return texts
}
