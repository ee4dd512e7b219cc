// Package textnorm normalizes free-text values before comparison.
// Category names arrive from feeds with a mix of Unicode composition forms,
// non-breaking spaces, and HTML entities; lookups against the mapping store
// must be stable across all of these.
package textnorm

import (
	"html"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize unescapes HTML entities, applies NFKC normalization and
// converts non-breaking spaces to regular spaces, in that order, so an
// entity-encoded nbsp lands on the same canonical form as a literal one.
// The result is the comparison form used by the category store.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return s
}

// Equal reports whether two strings are equal under Normalize.
func Equal(a, b string) bool {
	return a == b || Normalize(a) == Normalize(b)
}

// CollapseSpaces replaces runs of whitespace with a single space and trims.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
