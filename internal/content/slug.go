package content

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const maxSlugBase = 50

// GenerateSlug derives a URL-safe, practically unique slug from a title.
// The unix timestamp suffix keeps two campaigns with the same title apart.
func GenerateSlug(title string, now time.Time) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteRune('-')
			dash = true
		}
	}

	base := strings.Trim(b.String(), "-")
	if runes := []rune(base); len(runes) > maxSlugBase {
		base = strings.TrimRight(string(runes[:maxSlugBase]), "-")
	}
	if base == "" {
		base = "newsletter"
	}
	return base + "-" + strconv.FormatInt(now.Unix(), 10)
}
