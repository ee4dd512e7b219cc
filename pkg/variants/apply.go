package variants

import (
	"github.com/gastroflow/gastroflow/pkg/catalog"

	"github.com/gastroflow/gastroflow/internal/matcher"
	"github.com/gastroflow/gastroflow/internal/natsort"
)

// TokenIssue records a wildcard token that resolved to zero or to several
// catalog codes. Selected is set for ambiguous parents.
type TokenIssue struct {
	GroupID    int    `yaml:"groupId"`
	Token      string `yaml:"token"`
	MatchCount int    `yaml:"matchCount,omitempty"`
	Selected   string `yaml:"selected,omitempty"`
}

// Conflict records a member that already carried a different parent when a
// group claimed it.
type Conflict struct {
	GroupID   int    `yaml:"groupId"`
	Code      string `yaml:"code"`
	OldParent string `yaml:"oldParent"`
	NewParent string `yaml:"newParent"`
}

// Summary is the audit trail of one report re-application.
type Summary struct {
	Groups              int          `yaml:"groups"`
	TotalProducts       int          `yaml:"totalProducts"`
	Assigned            int          `yaml:"assigned"`
	UnmatchedParents    []TokenIssue `yaml:"unmatchedParents,omitempty"`
	UnmatchedProducts   []TokenIssue `yaml:"unmatchedProducts,omitempty"`
	AmbiguousParents    []TokenIssue `yaml:"ambiguousParents,omitempty"`
	AmbiguousProducts   []TokenIssue `yaml:"ambiguousProducts,omitempty"`
	OverriddenConflicts []Conflict   `yaml:"overriddenConflicts,omitempty"`
	SkippedConflicts    []Conflict   `yaml:"skippedConflicts,omitempty"`
}

// ApplyReport re-applies groups parsed from a possibly hand-edited report.
// Member and parent entries may be wildcard tokens; each token resolves
// against the live table, ambiguity falls to the natural-sort-smallest
// match, an unmatched parent falls back to the smallest resolved member,
// and existing different parents follow the override policy. Returns the
// resolved groups and the audit summary; the table gets parent codes
// assigned in place.
func (m *Matcher) ApplyReport(t *catalog.Table, groups []Group, override bool) ([]Group, *Summary) {
	summary := &Summary{Groups: len(groups)}
	for _, g := range groups {
		summary.TotalProducts += len(g.Members)
	}

	codes := t.Codes()
	var resolved []Group

	for _, g := range groups {
		expanded := m.expandMembers(t, g, codes, summary)

		parent := m.resolveParent(g, expanded, codes, summary)
		if len(expanded) == 0 || parent == "" {
			continue
		}
		for i := range expanded {
			expanded[i].IsParent = expanded[i].Code == parent
		}

		m.assign(t, g.ID, parent, expanded, override, summary)
		resolved = append(resolved, Group{ID: g.ID, ParentCode: parent, Members: expanded})
	}

	m.logger.Info().
		Int("groups", len(resolved)).
		Int("assigned", summary.Assigned).
		Int("unmatched", len(summary.UnmatchedParents)+len(summary.UnmatchedProducts)).
		Msg("report re-application complete")
	return resolved, summary
}

// resolveToken matches one wildcard token against the live codes and
// returns the matches in natural order.
func resolveToken(token string, codes []string) []string {
	matches := matcher.Compile(token).MatchAll(codes)
	natsort.Sort(matches)
	return matches
}

func (m *Matcher) expandMembers(t *catalog.Table, g Group, codes []string, summary *Summary) []Member {
	var expanded []Member
	for _, member := range g.Members {
		matches := resolveToken(member.Code, codes)
		if len(matches) == 0 {
			summary.UnmatchedProducts = append(summary.UnmatchedProducts, TokenIssue{GroupID: g.ID, Token: member.Code})
			continue
		}
		if len(matches) > 1 {
			summary.AmbiguousProducts = append(summary.AmbiguousProducts, TokenIssue{
				GroupID: g.ID, Token: member.Code, MatchCount: len(matches),
			})
		}
		for _, code := range matches {
			name := member.Name
			if rec, ok := t.Get(code); ok {
				name = rec.Name
			}
			expanded = append(expanded, Member{
				Code:     code,
				Name:     name,
				BaseName: ExtractBaseName(name),
			})
		}
	}
	return expanded
}

func (m *Matcher) resolveParent(g Group, expanded []Member, codes []string, summary *Summary) string {
	var matches []string
	if g.ParentCode != "" {
		matches = resolveToken(g.ParentCode, codes)
	}
	if len(matches) == 0 {
		if g.ParentCode != "" {
			summary.UnmatchedParents = append(summary.UnmatchedParents, TokenIssue{GroupID: g.ID, Token: g.ParentCode})
		}
		// Fall back to the smallest resolved member.
		if len(expanded) > 0 {
			memberCodes := make([]string, len(expanded))
			for i, e := range expanded {
				memberCodes[i] = e.Code
			}
			return natsort.Min(memberCodes)
		}
		return ""
	}
	if len(matches) > 1 {
		summary.AmbiguousParents = append(summary.AmbiguousParents, TokenIssue{
			GroupID: g.ID, Token: g.ParentCode, MatchCount: len(matches), Selected: matches[0],
		})
	}
	return matches[0]
}

func (m *Matcher) assign(t *catalog.Table, groupID int, parent string, members []Member, override bool, summary *Summary) {
	for _, member := range members {
		if member.Code == parent {
			continue
		}
		rec, ok := t.Get(member.Code)
		if !ok {
			continue
		}
		switch {
		case rec.ParentCode == "":
			rec.ParentCode = parent
			summary.Assigned++
		case rec.ParentCode == parent:
			// Already set to the desired parent.
		case override:
			summary.OverriddenConflicts = append(summary.OverriddenConflicts, Conflict{
				GroupID: groupID, Code: member.Code, OldParent: rec.ParentCode, NewParent: parent,
			})
			rec.ParentCode = parent
			summary.Assigned++
		default:
			summary.SkippedConflicts = append(summary.SkippedConflicts, Conflict{
				GroupID: groupID, Code: member.Code, OldParent: rec.ParentCode, NewParent: parent,
			})
		}
	}
}
