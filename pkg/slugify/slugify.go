// Package slugify derives URL-safe identifiers from book titles.
package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts a title into a URL-safe slug: accents are stripped, the
// result is lowercased, runs of non-alphanumeric characters collapse into a
// single hyphen, and leading/trailing hyphens are trimmed.
func From(s string) string {
	// Decompose accented characters and drop the combining marks, so
	// "Crème Brûlée" becomes "Creme Brulee".
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposed, _, err := transform.String(t, s)
	if err == nil {
		s = decomposed
	}

	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
