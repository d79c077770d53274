package utils

import "strings"

// Slugify normalizes text into a URL-safe slug base: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
// Returns "" when nothing survives normalization.
func Slugify(text string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
