package variants

import (
	"regexp"
	"strings"
)

// The strips run in order; each later pattern catches forms the earlier
// ones leave behind.
var (
	// Dimension runs anywhere: "400x400x850mm", "5x33", "300x700 mm".
	dimsAnywhere = regexp.MustCompile(`\s+\d+(?:[xX×]\d+)+(?:\s*mm)?(?:\s*cm)?(?:\s*l)?(?:\s|$)`)
	// Dimension runs at the end of the name.
	dimsTrailing = regexp.MustCompile(`\s+\d+(?:[xX×]\d+)+(?:\s*mm)?(?:\s*cm)?(?:\s*l)?$`)
	// Dash-prefixed runs: "- 400x400x850 mm", "- 5x33".
	dimsDashed = regexp.MustCompile(`\s*[-–]\s*\d+(?:[xX×]\d+)*(?:\s*mm)?(?:\s*cm)?(?:\s*l)?`)
	// Bare sizes: "- 25 cm", "50 l", "1800-2000", "200/60".
	bareSize = regexp.MustCompile(`\s*[-–]?\s*\d+(?:[/-]\d+)?(?:\s*[a-zA-Z]+)?(?:\s|$)`)
	// Parenthesized dimensions: "(400x400x850 mm)", "(5x33)".
	dimsParens = regexp.MustCompile(`\s*\(\d+(?:[xX×]\d+)*(?:\s*mm)?(?:\s*cm)?(?:\s*l)?\)`)

	multiSpace = regexp.MustCompile(`\s+`)
)

// ExtractBaseName strips dimension and size tokens from a product name.
// The result is the grouping key for variant detection and is never stored
// on the record.
func ExtractBaseName(name string) string {
	if name == "" {
		return ""
	}
	base := dimsAnywhere.ReplaceAllString(name, " ")
	base = dimsTrailing.ReplaceAllString(base, "")
	base = dimsDashed.ReplaceAllString(base, "")
	// Parenthesized blocks go before bare sizes; otherwise the bare-size
	// pass eats the trailing number inside "(400x400x850 mm)" and leaves
	// a mangled interior the parens pattern can no longer match.
	base = dimsParens.ReplaceAllString(base, "")
	base = bareSize.ReplaceAllString(base, " ")
	base = multiSpace.ReplaceAllString(base, " ")
	return strings.TrimSpace(base)
}
