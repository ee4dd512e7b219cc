package reports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

func sampleGroups() []variants.Group {
	return []variants.Group{
		{ID: 1, ParentCode: "T001", Members: []variants.Member{
			{Code: "T001", Name: "Stôl pracovný nerezový 400x400x850mm", BaseName: "Stôl pracovný nerezový", IsParent: true},
			{Code: "T002", Name: "Stôl pracovný nerezový 400x400x1200mm", BaseName: "Stôl pracovný nerezový"},
		}},
		{ID: 2, ParentCode: "LX-0001", Members: []variants.Member{
			{Code: "LX-0001", Name: "Výrobník ľadu 25 kg", BaseName: "Výrobník ľadu", IsParent: true},
			{Code: "LX-0002", Name: "Výrobník ľadu 35 kg", BaseName: "Výrobník ľadu"},
		}},
	}
}

func TestWriteGroupsFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGroups(&buf, sampleGroups()))
	out := buf.String()

	assert.Contains(t, out, "PRODUCT VARIANT GROUPS REPORT")
	assert.Contains(t, out, "Total groups: 2")
	assert.Contains(t, out, "Total variants: 4")
	assert.Contains(t, out, "Group #1 - Parent catalog: T001")
	assert.Contains(t, out, "1. [PARENT] T001 - Stôl pracovný nerezový 400x400x850mm")
	assert.Contains(t, out, "2.          T002 - Stôl pracovný nerezový 400x400x1200mm")
	assert.Contains(t, out, "   Base name: Stôl pracovný nerezový")
}

func TestGroupsRoundTrip(t *testing.T) {
	groups := sampleGroups()
	var buf bytes.Buffer
	require.NoError(t, WriteGroups(&buf, groups))

	parsed, err := ParseGroups(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	for i, g := range groups {
		assert.Equal(t, g.ID, parsed[i].ID)
		assert.Equal(t, g.ParentCode, parsed[i].ParentCode)
		require.Len(t, parsed[i].Members, len(g.Members))
		for j, m := range g.Members {
			assert.Equal(t, m.Code, parsed[i].Members[j].Code)
			assert.Equal(t, m.Name, parsed[i].Members[j].Name)
			assert.Equal(t, m.BaseName, parsed[i].Members[j].BaseName)
			assert.Equal(t, m.IsParent, parsed[i].Members[j].IsParent)
		}
	}
}

func TestParseGroupsHandEdited(t *testing.T) {
	report := strings.Join([]string{
		"some operator note that is not part of the format",
		"Group # 7 - Parent catalog: LX-xxxx-POL",
		"--------------------------------------------------------------------------------",
		"1. [ PARENT ] LX-xxxx-POL - Výrobník ľadu",
		"2. LX-1234-POL - Výrobník ľadu 35 kg",
		"   Base name: Výrobník ľadu",
		"",
	}, "\n")

	groups, err := ParseGroups(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 7, g.ID)
	assert.Equal(t, "LX-xxxx-POL", g.ParentCode)
	require.Len(t, g.Members, 2)
	assert.True(t, g.Members[0].IsParent)
	assert.Equal(t, "LX-xxxx-POL", g.Members[0].Code)
	assert.False(t, g.Members[1].IsParent)
	assert.Equal(t, "LX-1234-POL", g.Members[1].Code)
	assert.Equal(t, "Výrobník ľadu", g.Members[1].BaseName)
}

func TestWriteDifferences(t *testing.T) {
	tbl := catalog.FromProducts([]catalog.Product{
		{Code: "T001", Name: "Stôl pracovný nerezový 400x400x850mm", Category: "Stoly"},
		{Code: "T002", Name: "Stôl pracovný nerezový 400x400x1200mm", Category: "Stoly"},
		{Code: "CH01", Name: "Chladnička biela", Category: "Chladničky"},
	})
	p, _ := tbl.Get("T002")
	p.SetAttribute(catalog.AttrWidth, "400 mm")
	p.SetAttribute(catalog.AttrHeight, "1200 mm")

	schema := variants.NewSchema([]variants.SchemaEntry{
		{Category: "Stoly", ResultColumns: []string{catalog.AttrWidth, catalog.AttrHeight}},
	})
	groups := []variants.Group{
		{ID: 1, ParentCode: "T001", Members: []variants.Member{
			{Code: "T001", IsParent: true}, {Code: "T002"}, {Code: "CH01"},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDifferences(&buf, tbl, groups, schema))
	out := buf.String()

	assert.Contains(t, out, "PRODUCT DIFFERENCES REPORT")
	assert.Contains(t, out, "Rozmery: Šírka: 400 mm, Výška: 1200 mm")
	assert.Contains(t, out, "Žiadne rozdiely neboli detekované", "parent without extractions gets the note")
	assert.NotContains(t, out, "CH01", "members outside the schema are omitted")
}

func TestWriteSummary(t *testing.T) {
	s := &variants.Summary{
		Groups:        2,
		TotalProducts: 5,
		Assigned:      3,
		AmbiguousParents: []variants.TokenIssue{
			{GroupID: 1, Token: "LX-xxxx", MatchCount: 2, Selected: "LX-0001"},
		},
		SkippedConflicts: []variants.Conflict{
			{GroupID: 2, Code: "P2", OldParent: "OLD", NewParent: "P1"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "VARIANT ASSIGNMENT SUMMARY")
	assert.Contains(t, out, "Assignments made: 3")
	assert.Contains(t, out, "Ambiguous parent tokens: 1")
	assert.Contains(t, out, `token "LX-xxxx" (matches: 2) selected LX-0001`)
	assert.Contains(t, out, "P2 parent OLD -> P1")
}

func TestWriterCreatesTimestampedFiles(t *testing.T) {
	rw := NewWriter(t.TempDir())
	path, err := rw.WriteGroupsFile(sampleGroups())
	require.NoError(t, err)
	assert.Contains(t, path, "product_variants_")

	parsed, err := ParseGroupsFile(path)
	require.NoError(t, err)
	assert.Len(t, parsed, 2)
}
