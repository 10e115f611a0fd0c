// Package slug derives URL-safe identifiers from post titles.
package slug

import "strings"

// turkish maps Turkish letters to their ASCII equivalents before stripping.
var turkish = strings.NewReplacer(
	"ş", "s", "Ş", "s",
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ü", "u", "Ü", "u",
)

// Make converts a title into a URL slug: lowercase ASCII, words joined by
// single hyphens, nothing outside [a-z0-9-]. Idempotent, so an already valid
// slug passes through unchanged.
func Make(title string) string {
	s := turkish.Replace(title)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n':
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	s = strings.Join(fields, "-")

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return s != "" && s == Make(s)
}
