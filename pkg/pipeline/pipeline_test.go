package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/categories"
	"github.com/gastroflow/gastroflow/pkg/merge"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

func newTestPipeline(t *testing.T, resolver categories.Resolver) (*Pipeline, *categories.Store) {
	t.Helper()
	store := categories.NewStore(filepath.Join(t.TempDir(), "mappings.yaml"))
	require.NoError(t, store.Load())

	mapper := categories.NewMapper(store)
	if resolver != nil {
		mapper.WithResolver(resolver)
	}
	schema := variants.NewSchema([]variants.SchemaEntry{
		{Category: "Tovary a kategórie > Stoly", ResultColumns: []string{
			catalog.AttrWidth, catalog.AttrLength, catalog.AttrHeight,
		}},
	})
	return New(mapper, schema, t.TempDir()), store
}

func TestRunMergesMapsAndGroups(t *testing.T) {
	p, _ := newTestPipeline(t, nil)

	primary := catalog.FromProducts([]catalog.Product{
		{Code: "F001", Name: "Fritéza elektrická 8 l", Category: "Fritézy",
			Price: "100.00", Images: []string{"a.jpg"}},
		{Code: "T001", Name: "Stôl pracovný nerezový 400x400x850mm", Category: "Stoly"},
		{Code: "T002", Name: "Stôl pracovný nerezový 400x400x1200mm", Category: "Stoly"},
	})
	feeds := []merge.Feed{
		{Name: "b", Products: []catalog.Product{
			{Code: "F001", Name: "Fryer import", Price: "120.00",
				Images: []string{"1.jpg", "2.jpg", "3.jpg"}},
		}},
	}

	result, err := p.Run(context.Background(), primary, feeds, DefaultOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)

	// Scenario: richer feed wins images and price.
	f, _ := result.Table.Get("F001")
	assert.Equal(t, 3, f.ImageCount())
	assert.Equal(t, "120.00", f.Price)

	// Categories got the final transform.
	assert.Equal(t, "Tovary a kategórie > Stoly", func() string {
		p, _ := result.Table.Get("T001")
		return p.Category
	}())

	// Variant family detected, parent assigned, attributes extracted.
	require.Len(t, result.Groups, 1)
	assert.Equal(t, "T001", result.Groups[0].ParentCode)
	t2, _ := result.Table.Get("T002")
	assert.Equal(t, "T001", t2.ParentCode)
	assert.Equal(t, "400 mm", t2.Attribute(catalog.AttrWidth))
	assert.Equal(t, "400 mm", t2.Attribute(catalog.AttrLength))
	assert.Equal(t, "1200 mm", t2.Attribute(catalog.AttrHeight))

	// Reports landed on disk.
	require.NotEmpty(t, result.GroupsReportPath)
	_, statErr := os.Stat(result.GroupsReportPath)
	assert.NoError(t, statErr)
	require.NotEmpty(t, result.DifferencesReportPath)
}

func TestRunResolverInvokedOncePerRawCategory(t *testing.T) {
	calls := 0
	resolver := categories.ResolverFunc(func(raw, _ string, _ []categories.Suggestion) (string, bool) {
		calls++
		assert.Equal(t, "Chladenie|Vitríny", raw)
		return "Vitríny", true
	})
	p, store := newTestPipeline(t, resolver)

	primary := catalog.FromProducts([]catalog.Product{
		{Code: "V001", Name: "Vitrína chladiaca", Category: "Chladenie|Vitríny"},
		{Code: "V002", Name: "Vitrína mraziaca", Category: "Chladenie|Vitríny"},
	})
	result, err := p.Run(context.Background(), primary, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "identical raw categories resolve once per run")
	v, _ := result.Table.Get("V001")
	assert.Equal(t, "Tovary a kategórie > Vitríny", v.Category)
	v, _ = result.Table.Get("V002")
	assert.Equal(t, "Tovary a kategórie > Vitríny", v.Category)

	mapped, ok := store.Find("Chladenie|Vitríny")
	require.True(t, ok, "resolution persisted to the store")
	assert.Equal(t, "Vitríny", mapped)
}

func TestRunCanceledContext(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, catalog.NewTable(), nil, DefaultOptions())
	assert.Error(t, err)
}

func TestApplyReportEndToEnd(t *testing.T) {
	p, _ := newTestPipeline(t, nil)

	tbl := catalog.FromProducts([]catalog.Product{
		{Code: "LX-0001", Name: "Výrobník ľadu 25 kg"},
		{Code: "LX-0002", Name: "Výrobník ľadu 35 kg"},
	})

	reportPath := filepath.Join(t.TempDir(), "edited.txt")
	report := "Group #1 - Parent catalog: LX-xxxx\n" +
		"1. [PARENT] LX-xxxx - Výrobník ľadu\n"
	require.NoError(t, os.WriteFile(reportPath, []byte(report), 0644))

	result, err := p.ApplyReport(context.Background(), tbl, reportPath, true, false)
	require.NoError(t, err)

	require.Len(t, result.Groups, 1)
	assert.Equal(t, "LX-0001", result.Groups[0].ParentCode)
	require.Len(t, result.Summary.AmbiguousParents, 1)
	assert.Equal(t, 2, result.Summary.AmbiguousParents[0].MatchCount)

	p2, _ := tbl.Get("LX-0002")
	assert.Equal(t, "LX-0001", p2.ParentCode)

	_, statErr := os.Stat(result.SummaryReportPath)
	assert.NoError(t, statErr)
}

func TestApplyReportMissingFile(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	_, err := p.ApplyReport(context.Background(), catalog.NewTable(),
		filepath.Join(t.TempDir(), "absent.txt"), true, false)
	assert.Error(t, err)
}
