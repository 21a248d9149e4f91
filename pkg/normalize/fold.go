// Package normalize provides case- and diacritic-insensitive string
// folding for fuzzy matching of names and emails. Folded strings are
// never used for primary-key comparison.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold trims, lowercases, and strips diacritical marks from s.
// Diacritics are removed by NFD decomposition followed by dropping
// combining marks, so "Nguyễn Văn A" and "nguyen van a" fold equal.
// Empty input yields an empty string.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Equal reports whether a and b fold to the same string.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
