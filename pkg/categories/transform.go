package categories

import "strings"

// Transform rewrites a resolved category into the shop's final taxonomy
// form: the source hierarchy separator becomes the display delimiter and
// the namespace prefix is prepended. It is applied last, independent of
// how the category was resolved, and is idempotent on already-prefixed
// values.
type Transform struct {
	Separator string
	Delimiter string
	Prefix    string
}

// DefaultTransform is the shop import convention.
func DefaultTransform() Transform {
	return Transform{Separator: "|", Delimiter: " > ", Prefix: "Tovary a kategórie"}
}

// Apply transforms one category value. Empty categories pass through
// untouched so uncategorized records never pick up a bare prefix.
func (t Transform) Apply(category string) string {
	c := strings.TrimSpace(category)
	if c == "" {
		return ""
	}
	if t.Prefix != "" && strings.HasPrefix(c, t.Prefix) {
		return c
	}
	if t.Separator != "" && t.Delimiter != "" {
		parts := strings.Split(c, t.Separator)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c = strings.Join(parts, t.Delimiter)
	}
	if t.Prefix != "" {
		c = t.Prefix + t.Delimiter + c
	}
	return c
}
