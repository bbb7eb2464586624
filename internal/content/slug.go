package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip      = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, strip
// characters outside word/space/hyphen, collapse whitespace to hyphens,
// then trim. The trim runs last, so edge whitespace becomes an edge
// hyphen and stays ("Hello " -> "hello-"). Idempotent for inputs
// already in slug form.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}
