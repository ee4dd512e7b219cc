// Package matcher compiles catalog-code wildcard tokens into anchored
// regular expressions. Tokens come from variant report files where a group
// parent is written as a masked code such as "LX-xxxx-POL": a run of x
// filling a separator-bounded segment stands for exactly that many digits,
// * for any run of characters and ? for a single character. Everything
// else matches literally, including x glued to other literal characters
// (the X in "LX" never becomes a digit).
//
// Both tokens and live catalog codes are normalized before matching so that
// separator and extension noise (spaces, dashes, underscores, slashes, dots,
// a trailing file extension) never defeats a match.
package matcher

import (
	"regexp"
	"strings"
)

var (
	leadingSlashes = regexp.MustCompile(`^[/\\]+`)
	fileExtension  = regexp.MustCompile(`\.[A-Za-z]{2,4}$`)
	separators     = regexp.MustCompile(`[\s\-_/\\.]`)
)

// NormalizeToken canonicalizes a wildcard token: leading slashes and a
// trailing file extension are dropped, then every separator character is
// removed.
func NormalizeToken(token string) string {
	t := strings.TrimSpace(token)
	t = leadingSlashes.ReplaceAllString(t, "")
	t = fileExtension.ReplaceAllString(t, "")
	return separators.ReplaceAllString(t, "")
}

// NormalizeCode canonicalizes a live catalog code the same way tokens are
// normalized, plus uppercasing, so token and code meet on common ground.
func NormalizeCode(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	return separators.ReplaceAllString(c, "")
}

// Token is a compiled wildcard token.
type Token struct {
	raw      string
	pattern  *regexp.Regexp
	matchAll bool
	wildcard bool
}

// Compile builds a Token from a raw wildcard string. Mask runs are decided
// before separator stripping: a segment made entirely of x/X masks that many
// digits, while x/X sharing a segment with other literals stays literal, so
// "LX-xxxx" compiles to LX followed by four digits rather than five. An
// empty token after normalization matches every code. Compile never fails:
// every non-wildcard character is quoted literally.
func Compile(raw string) *Token {
	t := strings.TrimSpace(raw)
	t = leadingSlashes.ReplaceAllString(t, "")
	t = fileExtension.ReplaceAllString(t, "")

	var b strings.Builder
	b.WriteString("(?i)^")
	empty := true
	wildcard := false
	for _, seg := range separators.Split(t, -1) {
		if seg == "" {
			continue
		}
		empty = false
		if isMaskRun(seg) {
			b.WriteString(`\d{`)
			b.WriteString(itoa(len(seg)))
			b.WriteString(`}`)
			wildcard = true
			continue
		}
		for i := 0; i < len(seg); i++ {
			switch seg[i] {
			case '*':
				b.WriteString(`.*`)
				wildcard = true
			case '?':
				b.WriteString(`.`)
				wildcard = true
			default:
				b.WriteString(regexp.QuoteMeta(seg[i : i+1]))
			}
		}
	}
	if empty {
		return &Token{raw: raw, matchAll: true}
	}
	b.WriteString("$")

	return &Token{raw: raw, pattern: regexp.MustCompile(b.String()), wildcard: wildcard}
}

// isMaskRun reports whether a separator-bounded segment is entirely x/X.
func isMaskRun(seg string) bool {
	for i := 0; i < len(seg); i++ {
		if seg[i] != 'x' && seg[i] != 'X' {
			return false
		}
	}
	return true
}

// Raw returns the original token string.
func (t *Token) Raw() string { return t.raw }

// IsWildcard reports whether the token compiled to any wildcard construct
// and so can match more than one code.
func (t *Token) IsWildcard() bool {
	return t.matchAll || t.wildcard
}

// Match reports whether a catalog code satisfies the token. The code is
// normalized before testing.
func (t *Token) Match(code string) bool {
	if t.matchAll {
		return true
	}
	return t.pattern.MatchString(NormalizeCode(code))
}

// MatchAll filters codes down to those the token matches, preserving order.
func (t *Token) MatchAll(codes []string) []string {
	var out []string
	for _, c := range codes {
		if t.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
