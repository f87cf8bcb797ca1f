package agencia

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// GenerateSlug derives a URL-safe identifier from a title: lower-cased,
// diacritics folded to their base ASCII letters, runs of anything else
// collapsed to a single hyphen, with no leading or trailing hyphens.
// Deterministic and pure; uniqueness is the content store's concern.
func GenerateSlug(title string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(title)))
	var b strings.Builder
	hyphen := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
