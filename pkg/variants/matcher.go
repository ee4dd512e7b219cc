package variants

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/constants"
	"github.com/gastroflow/gastroflow/pkg/logging"

	"github.com/gastroflow/gastroflow/internal/natsort"
)

// DefaultExcludedManufacturers lists manufacturers whose catalogs manage
// their own variant hierarchies and must never be regrouped.
var DefaultExcludedManufacturers = []string{"Liebherr"}

// Matcher detects variant families on a canonical table. It holds no state
// across runs; everything it learns ends up on the table or in reports.
type Matcher struct {
	schema   *Schema
	excluded []string
	logger   *zerolog.Logger
}

// NewMatcher builds a matcher with the default manufacturer exclusions.
func NewMatcher(schema *Schema) *Matcher {
	return &Matcher{
		schema:   schema,
		excluded: DefaultExcludedManufacturers,
		logger:   logging.Default(),
	}
}

// WithExcludedManufacturers replaces the manufacturer block-list. Records
// whose manufacturer contains any of the names (case-insensitive) are never
// considered for grouping.
func (m *Matcher) WithExcludedManufacturers(names []string) *Matcher {
	m.excluded = names
	return m
}

// WithLogger overrides the logger.
func (m *Matcher) WithLogger(l *zerolog.Logger) *Matcher {
	m.logger = l
	return m
}

// Analyze groups ungrouped products by base-name similarity and returns the
// detected families. The table is not modified; call ApplyGroups to assign
// parent codes.
//
// Grouping is a single greedy order-preserving pass: a record opens a group
// only when its base name is long enough to be unambiguous, later records
// join the group when the length ratio and similarity gates both pass, and
// once assigned a record is never reconsidered. Groups of one are dropped.
func (m *Matcher) Analyze(t *catalog.Table) []Group {
	candidates := m.candidates(t)
	if len(candidates) < 2 {
		m.logger.Info().Msg("no suitable products for variant analysis")
		return nil
	}

	visited := make([]bool, len(candidates))
	var groups []Group

	for i, first := range candidates {
		if visited[i] {
			continue
		}
		if utf8.RuneCountInString(first.baseName) < constants.MinBaseNameLength {
			continue
		}
		visited[i] = true
		members := []candidate{first}

		for j := i + 1; j < len(candidates); j++ {
			if visited[j] {
				continue
			}
			other := candidates[j]
			if utf8.RuneCountInString(other.baseName) < constants.MinBaseNameLength {
				continue
			}
			if lengthRatio(first.baseName, other.baseName) < constants.MinLengthRatio {
				continue
			}
			if similarity(first.baseName, other.baseName) <= constants.SimilarityThreshold {
				continue
			}
			visited[j] = true
			members = append(members, other)
		}

		if len(members) < 2 {
			continue
		}
		groups = append(groups, m.buildGroup(len(groups)+1, members))
	}

	total := 0
	for _, g := range groups {
		total += len(g.Members)
	}
	if len(groups) > 0 {
		m.logger.Info().Int("groups", len(groups)).Int("variants", total).Msg("variant families detected")
	} else {
		m.logger.Info().Msg("no product variants detected")
	}
	return groups
}

// ApplyGroups assigns parent codes from groups onto the table and returns
// the number of assignments. With override false, members that already
// carry a parent keep it.
func (m *Matcher) ApplyGroups(t *catalog.Table, groups []Group, override bool) int {
	assigned := 0
	for _, g := range groups {
		if g.ParentCode == "" {
			continue
		}
		for _, member := range g.Members {
			if member.Code == g.ParentCode {
				continue
			}
			rec, ok := t.Get(member.Code)
			if !ok {
				continue
			}
			if override || rec.ParentCode == "" {
				rec.ParentCode = g.ParentCode
				assigned++
			}
		}
	}
	m.logger.Info().Int("assigned", assigned).Msg("parent codes assigned from groups")
	return assigned
}

type candidate struct {
	product  *catalog.Product
	baseName string
}

// candidates filters the table down to groupable records: no parent yet,
// not used as a parent by someone else, manufacturer not excluded, and a
// non-empty base name.
func (m *Matcher) candidates(t *catalog.Table) []candidate {
	usedAsParent := make(map[string]bool)
	for _, p := range t.Products() {
		if p.ParentCode != "" {
			usedAsParent[catalog.NormalizeCode(p.ParentCode)] = true
		}
	}

	var out []candidate
	for _, p := range t.Products() {
		if p.ParentCode != "" || usedAsParent[p.Code] || m.isExcluded(p.Manufacturer) {
			continue
		}
		base := ExtractBaseName(p.Name)
		if base == "" {
			continue
		}
		out = append(out, candidate{product: p, baseName: base})
	}
	return out
}

func (m *Matcher) isExcluded(manufacturer string) bool {
	if manufacturer == "" {
		return false
	}
	lower := strings.ToLower(manufacturer)
	for _, name := range m.excluded {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

func (m *Matcher) buildGroup(id int, members []candidate) Group {
	codes := make([]string, len(members))
	for i, c := range members {
		codes[i] = c.product.Code
	}
	parent := natsort.Min(codes)

	g := Group{ID: id, ParentCode: parent}
	for _, c := range members {
		g.Members = append(g.Members, Member{
			Code:     c.product.Code,
			Name:     c.product.Name,
			BaseName: c.baseName,
			IsParent: c.product.Code == parent,
		})
	}
	return g
}

func lengthRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// similarity is a character-level sequence ratio in [0,1].
func similarity(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
