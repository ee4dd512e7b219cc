package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"LX-xxxx-POL", "LXxxxxPOL"},
		{"/catalog/LX-1234.jpg", "catalogLX1234"},
		{"  ABC_12 34  ", "ABC1234"},
		{"foo.bar.png", "foobar"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeToken(tt.in), "token %q", tt.in)
	}
}

func TestDigitMaskMatching(t *testing.T) {
	tok := Compile("LX-xxxx-POL")

	assert.True(t, tok.Match("LX-1234-POL"))
	assert.True(t, tok.Match("lx1234pol"), "matching ignores case and separators")
	assert.False(t, tok.Match("LX-12A4-POL"), "x positions accept digits only")
	assert.False(t, tok.Match("LX-123-POL"), "run length is exact")
	assert.False(t, tok.Match("LX-12345-POL"))
	assert.True(t, tok.IsWildcard())
}

func TestMaskRunsRespectSegmentBoundaries(t *testing.T) {
	// The X in the literal prefix must not widen the adjacent mask run.
	tok := Compile("MAX-xx")
	assert.True(t, tok.Match("MAX-12"))
	assert.False(t, tok.Match("MA123"), "literal X is not a digit slot")

	// x glued to other literals inside one segment stays literal.
	tok = Compile("F-xx0")
	assert.True(t, tok.Match("F-XX0"))
	assert.False(t, tok.Match("F-110"))
	assert.False(t, tok.IsWildcard())
}

func TestStarAndQuestionMark(t *testing.T) {
	tok := Compile("GN-*")
	assert.True(t, tok.Match("GN-11-100"))
	assert.True(t, tok.Match("GN"))
	assert.False(t, tok.Match("XGN-11"))

	tok = Compile("T?01")
	assert.True(t, tok.Match("T001"))
	assert.True(t, tok.Match("TA01"))
	assert.False(t, tok.Match("T0001"))
}

func TestLiteralToken(t *testing.T) {
	tok := Compile("700.KE-40")
	assert.True(t, tok.Match("700KE40"))
	assert.True(t, tok.Match("700.KE-40"))
	assert.False(t, tok.Match("700KE41"))
	assert.False(t, tok.IsWildcard())
}

func TestEmptyTokenMatchesAll(t *testing.T) {
	tok := Compile("  / ")
	assert.True(t, tok.Match("ANYTHING"))
	assert.True(t, tok.IsWildcard())
}

func TestMatchAll(t *testing.T) {
	tok := Compile("F-xx")
	got := tok.MatchAll([]string{"F-11", "F-20", "F-110", "G-11"})
	assert.Equal(t, []string{"F-11", "F-20"}, got)
}
