package catalog

import (
	"strings"

	"github.com/gastroflow/gastroflow/pkg/errors"
)

// Table is an insertion-ordered product collection keyed by catalog code.
// Codes are uppercased on entry so lookups are case-stable. Records are
// held by pointer: the merge and variant stages mutate them in place.
type Table struct {
	records []*Product
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// FromProducts builds a table from records in order. Duplicate codes keep
// the first occurrence; later duplicates are dropped silently because input
// deduplication is the merger's job, not the table's.
func FromProducts(products []Product) *Table {
	t := NewTable()
	for i := range products {
		p := products[i]
		_ = t.Add(&p)
	}
	return t
}

// NormalizeCode uppercases and trims a catalog code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Add appends a record. The code is normalized; an empty code or an
// existing code is rejected.
func (t *Table) Add(p *Product) error {
	code := NormalizeCode(p.Code)
	if code == "" {
		return errors.NewValidationError("code", p.Code, "cannot be empty")
	}
	if _, exists := t.index[code]; exists {
		return errors.ErrAlreadyExists
	}
	p.Code = code
	t.index[code] = len(t.records)
	t.records = append(t.records, p)
	return nil
}

// Get returns the record for code, if present.
func (t *Table) Get(code string) (*Product, bool) {
	i, ok := t.index[NormalizeCode(code)]
	if !ok {
		return nil, false
	}
	return t.records[i], true
}

// Has reports whether code is present.
func (t *Table) Has(code string) bool {
	_, ok := t.index[NormalizeCode(code)]
	return ok
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Products returns the records in insertion order. The slice is a copy but
// the pointers are live; callers mutate records through them.
func (t *Table) Products() []*Product {
	out := make([]*Product, len(t.records))
	copy(out, t.records)
	return out
}

// Codes returns all catalog codes in insertion order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.records))
	for i, p := range t.records {
		out[i] = p.Code
	}
	return out
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	for _, p := range t.records {
		_ = c.Add(p.Clone())
	}
	return c
}

// Validate checks the table invariants: every non-empty ParentCode must
// reference another record in the same table, and no record may parent
// itself.
func (t *Table) Validate() error {
	for _, p := range t.records {
		if p.ParentCode == "" {
			continue
		}
		parent := NormalizeCode(p.ParentCode)
		if parent == p.Code {
			return errors.NewValidationError("parentCode", p.ParentCode,
				"record "+p.Code+" cannot be its own parent")
		}
		if _, ok := t.index[parent]; !ok {
			return errors.NewValidationError("parentCode", p.ParentCode,
				"record "+p.Code+" references unknown parent")
		}
	}
	return nil
}
