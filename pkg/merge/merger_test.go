package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastroflow/gastroflow/pkg/catalog"
)

func TestMergeAddsNewRecords(t *testing.T) {
	primary := catalog.FromProducts([]catalog.Product{
		{Code: "F001", Name: "Fritéza", Price: "100.00"},
	})
	merged, stats := NewMerger().Merge(primary, []Feed{
		{Name: "gastromarket", Products: []catalog.Product{
			{Code: "g100", Name: "Gril"},
		}},
	})

	require.Equal(t, 2, merged.Len())
	p, ok := merged.Get("G100")
	require.True(t, ok)
	assert.Equal(t, "gastromarket", p.Source)
	assert.False(t, p.LastUpdated.IsZero())
	assert.Equal(t, 1, stats.Source("gastromarket").Added)
	assert.Equal(t, 0, stats.Source("gastromarket").Updated)
}

func TestMergeImageRichnessReplacesImagesAndPrice(t *testing.T) {
	// Source A: 1 image, price 100.00. Source B: 3 images, price 120.00.
	primary := catalog.FromProducts([]catalog.Product{
		{Code: "F001", Name: "Fritéza 8L", Description: "pôvodný popis",
			Price: "100.00", Images: []string{"a.jpg"}},
	})
	merged, stats := NewMerger().Merge(primary, []Feed{
		{Name: "b", Products: []catalog.Product{
			{Code: "F001", Name: "Fryer 8L import", Price: "120.00",
				Images: []string{"1.jpg", "2.jpg", "3.jpg"}},
		}},
	})

	p, _ := merged.Get("F001")
	assert.Equal(t, 3, p.ImageCount())
	assert.Equal(t, "120.00", p.Price)
	assert.Equal(t, "Fritéza 8L", p.Name, "name stays with the earlier source")
	assert.Equal(t, "pôvodný popis", p.Description)
	assert.Equal(t, 1, stats.Source("b").Updated)
}

func TestMergeImageCountIsMaxAcrossSources(t *testing.T) {
	primary := catalog.FromProducts([]catalog.Product{
		{Code: "X1", Images: []string{"a", "b", "c"}},
	})
	merged, _ := NewMerger().Merge(primary, []Feed{
		{Name: "one", Products: []catalog.Product{{Code: "X1", Images: []string{"d"}}}},
		{Name: "two", Products: []catalog.Product{{Code: "X1", Images: []string{"e", "f", "g", "h"}}}},
	})

	p, _ := merged.Get("X1")
	assert.Equal(t, 4, p.ImageCount())
}

func TestMergePriceTracksLatestNumericChange(t *testing.T) {
	primary := catalog.FromProducts([]catalog.Product{
		{Code: "X1", Price: "120.00", Images: []string{"a", "b"}},
	})
	merged, stats := NewMerger().Merge(primary, []Feed{
		{Name: "same", Products: []catalog.Product{{Code: "X1", Price: "120.0"}}},
		{Name: "changed", Products: []catalog.Product{{Code: "X1", Price: "125.50"}}},
	})

	p, _ := merged.Get("X1")
	assert.Equal(t, "125.50", p.Price)
	assert.Equal(t, 0, stats.Source("same").Updated, "formatting-only difference is not a change")
	assert.Equal(t, 1, stats.Source("changed").Updated)
	assert.Equal(t, 2, p.ImageCount(), "fewer images never displace stored images")
}

func TestMergeBlankPriceNeverUpdates(t *testing.T) {
	primary := catalog.FromProducts([]catalog.Product{
		{Code: "X1", Price: "99.00"},
	})
	merged, stats := NewMerger().Merge(primary, []Feed{
		{Name: "empty", Products: []catalog.Product{{Code: "X1", Price: ""}}},
		{Name: "garbage", Products: []catalog.Product{{Code: "X1", Price: "n/a"}}},
	})

	p, _ := merged.Get("X1")
	assert.Equal(t, "99.00", p.Price)
	assert.Equal(t, 0, stats.TotalUpdated())
}

func TestMergeDuplicateCodesInOneSource(t *testing.T) {
	merged, _ := NewMerger().Merge(nil, []Feed{
		{Name: "dup", Products: []catalog.Product{
			{Code: "D1", Name: "first", Price: "10.00"},
			{Code: "d1", Name: "second", Price: "20.00"},
			{Code: "D1", Name: "third", Price: "30.00"},
		}},
	})

	require.Equal(t, 1, merged.Len())
	p, _ := merged.Get("D1")
	assert.Equal(t, "first", p.Name, "first occurrence is kept")
	assert.Equal(t, "30.00", p.Price, "last occurrence's price wins")
}

func TestMergeSkipsSourceWithoutCodes(t *testing.T) {
	merged, stats := NewMerger().Merge(nil, []Feed{
		{Name: "broken", Products: []catalog.Product{
			{Name: "no code"}, {Name: "still no code"},
		}},
		{Name: "good", Products: []catalog.Product{{Code: "A1"}}},
	})

	assert.True(t, stats.Source("broken").Skipped)
	assert.Equal(t, 1, merged.Len())
	assert.Equal(t, 1, stats.Source("good").Added)
}

func TestMergeIdempotence(t *testing.T) {
	feed := Feed{Name: "b", Products: []catalog.Product{
		{Code: "F001", Name: "Fryer", Price: "120.00", Images: []string{"1", "2", "3"}},
		{Code: "G200", Name: "Grill", Price: "80.00"},
	}}

	once, _ := NewMerger().Merge(newPrimary(), []Feed{feed})
	twice, _ := NewMerger().Merge(newPrimary(), []Feed{feed, feed})

	require.Equal(t, once.Len(), twice.Len())
	for _, code := range once.Codes() {
		a, _ := once.Get(code)
		b, ok := twice.Get(code)
		require.True(t, ok)
		assert.Equal(t, a.Price, b.Price, code)
		assert.Equal(t, a.Images, b.Images, code)
		assert.Equal(t, a.Name, b.Name, code)
	}
}

func newPrimary() *catalog.Table {
	return catalog.FromProducts([]catalog.Product{
		{Code: "F001", Name: "Fritéza 8L", Price: "100.00", Images: []string{"a.jpg"}},
	})
}
