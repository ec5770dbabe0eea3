package common

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]+`)
	slugCollapse = regexp.MustCompile(`\s+`)
)

// Slugify derives the URL path segment for a post from its title:
// lower-cased, punctuation stripped, whitespace runs collapsed to single
// hyphens. Deterministic, and idempotent for already-clean input.
// Uniqueness is not guaranteed here; the publishing workflow enforces it.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "")
	return slugCollapse.ReplaceAllString(slug, "-")
}
