package page

import "strings"

const maxSlug = 80

// Slug turns a title into a lower-case ASCII fragment usable as an element
// ID or URL segment.  Runs of anything outside a-z and 0-9 collapse to one
// hyphen; leading and trailing hyphens are dropped.  An empty result is
// "section".
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	dash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	s := b.String()
	if len(s) > maxSlug {
		s = s[:maxSlug]
	}
	s = strings.TrimRight(s, "-")
	if s == "" {
		return "section"
	}
	return s
}
