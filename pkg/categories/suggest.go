package categories

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/gastroflow/gastroflow/pkg/constants"
)

// Suggestion is a candidate canonical category with its weighted score.
type Suggestion struct {
	Category string
	Score    float64
}

// Suggest ranks candidates against a raw category and returns the top n
// (n <= 0 means the default suggestion count). The score blends a full
// ratio, a token-sort ratio, a partial ratio and a hierarchy bonus that
// rewards candidates sharing leading path segments and a similar final
// segment.
func Suggest(raw string, candidates []string, n int) []Suggestion {
	if n <= 0 {
		n = constants.SuggestionCount
	}
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, Suggestion{Category: c, Score: score(raw, c)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func score(raw, candidate string) float64 {
	a := strings.ToLower(strings.TrimSpace(raw))
	b := strings.ToLower(strings.TrimSpace(candidate))

	full := float64(fuzzy.Ratio(a, b))
	tokenSort := float64(fuzzy.TokenSortRatio(a, b))
	partial := float64(fuzzy.PartialRatio(a, b))
	bonus := hierarchyBonus(a, b)

	return 0.40*full + 0.30*tokenSort + 0.20*partial + 0.10*bonus
}

// hierarchyBonus scores path structure: 0.7 times the similarity of the
// final segments plus 10 points per leading segment pair that matches at
// more than 80 similarity, stopping at the first mismatch.
func hierarchyBonus(a, b string) float64 {
	segsA := splitPath(a)
	segsB := splitPath(b)
	if len(segsA) == 0 || len(segsB) == 0 {
		return 0
	}

	final := float64(fuzzy.Ratio(segsA[len(segsA)-1], segsB[len(segsB)-1]))
	bonus := 0.7 * final

	leading := len(segsA) - 1
	if l := len(segsB) - 1; l < leading {
		leading = l
	}
	for i := 0; i < leading; i++ {
		if fuzzy.Ratio(segsA[i], segsB[i]) <= 80 {
			break
		}
		bonus += 10
	}
	if bonus > 100 {
		bonus = 100
	}
	return bonus
}

func splitPath(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == '>'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
