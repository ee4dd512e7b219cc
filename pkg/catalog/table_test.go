package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gastroflow/gastroflow/pkg/errors"
)

func TestTableAddAndGet(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Add(&Product{Code: "f001", Name: "Fritéza"}))

	p, ok := tbl.Get("F001")
	require.True(t, ok)
	assert.Equal(t, "F001", p.Code, "codes normalize to uppercase")

	p, ok = tbl.Get("f001")
	require.True(t, ok)
	assert.Equal(t, "Fritéza", p.Name)

	err := tbl.Add(&Product{Code: "F001"})
	assert.True(t, pkgerrors.IsAlreadyExists(err))

	err = tbl.Add(&Product{Code: "  "})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestTableOrderPreserved(t *testing.T) {
	tbl := FromProducts([]Product{
		{Code: "B2"}, {Code: "A1"}, {Code: "C3"},
	})
	assert.Equal(t, []string{"B2", "A1", "C3"}, tbl.Codes())
}

func TestFromProductsDropsDuplicates(t *testing.T) {
	tbl := FromProducts([]Product{
		{Code: "X1", Name: "first"},
		{Code: "x1", Name: "second"},
	})
	require.Equal(t, 1, tbl.Len())
	p, _ := tbl.Get("X1")
	assert.Equal(t, "first", p.Name)
}

func TestImageCount(t *testing.T) {
	p := &Product{Images: []string{"a.jpg", "", " ", "b.jpg"}}
	assert.Equal(t, 2, p.ImageCount())

	// Slots past the eighth never count.
	p = &Product{Images: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}}
	assert.Equal(t, 8, p.ImageCount())
}

func TestDecimalPrice(t *testing.T) {
	p := &Product{Price: "120.00"}
	d, ok := p.DecimalPrice()
	require.True(t, ok)
	assert.Equal(t, "120", d.String())

	p = &Product{Price: "1 234"}
	_, ok = p.DecimalPrice()
	assert.False(t, ok)

	p = &Product{Price: "99,90"}
	d, ok = p.DecimalPrice()
	require.True(t, ok)
	assert.Equal(t, "99.9", d.String())

	p = &Product{}
	_, ok = p.DecimalPrice()
	assert.False(t, ok)
}

func TestPriceEquals(t *testing.T) {
	a := &Product{Price: "120.00"}
	b := &Product{Price: "120.0"}
	assert.True(t, a.PriceEquals(b), "formatting differences are not changes")

	c := &Product{Price: "121"}
	assert.False(t, a.PriceEquals(c))

	blank := &Product{}
	assert.False(t, a.PriceEquals(blank))
	assert.True(t, blank.PriceEquals(&Product{Price: "abc"}), "two non-values are equal")
}

func TestValidate(t *testing.T) {
	tbl := FromProducts([]Product{
		{Code: "T001"},
		{Code: "T002", ParentCode: "T001"},
	})
	assert.NoError(t, tbl.Validate())

	tbl = FromProducts([]Product{{Code: "T001", ParentCode: "T001"}})
	assert.Error(t, tbl.Validate())

	tbl = FromProducts([]Product{{Code: "T001", ParentCode: "MISSING"}})
	assert.Error(t, tbl.Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	tbl := FromProducts([]Product{
		{Code: "F001", Name: "Fritéza 8L", Price: "100.00", Images: []string{"f.jpg"}},
		{Code: "T001", Name: "Stôl 400x400x850mm", Category: "Stoly"},
	})
	require.NoError(t, SaveTable(tbl, path))

	loaded, err := LoadTable(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, tbl.Codes(), loaded.Codes())

	p, ok := loaded.Get("F001")
	require.True(t, ok)
	assert.Equal(t, "Fritéza 8L", p.Name)
	assert.Equal(t, []string{"f.jpg"}, p.Images)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
