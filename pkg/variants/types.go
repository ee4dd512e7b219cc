// Package variants detects families of near-duplicate products that differ
// only by size, power, volume or a similar axis. Detection groups records
// by base-name similarity, picks a parent per group by natural sort and
// extracts the structured attributes that distinguish the members. Groups
// can also come back from a human-edited report, where catalog codes may be
// wildcard tokens; re-application resolves the tokens against the live
// table with full unmatched/ambiguous/conflict accounting.
package variants

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gastroflow/gastroflow/pkg/errors"
)

// Member is one product inside a variant group.
type Member struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	BaseName string `yaml:"baseName"`
	IsParent bool   `yaml:"isParent"`
}

// Group is a detected or parsed variant family. ParentCode holds a concrete
// catalog code after detection or resolution; in a group parsed from a
// hand-edited report it may still be a wildcard token.
type Group struct {
	ID         int      `yaml:"id"`
	ParentCode string   `yaml:"parentCode"`
	Members    []Member `yaml:"members"`
}

// MemberCodes returns the member codes in group order.
func (g *Group) MemberCodes() []string {
	codes := make([]string, len(g.Members))
	for i, m := range g.Members {
		codes[i] = m.Code
	}
	return codes
}

// SchemaEntry declares which attributes are extracted for one category.
type SchemaEntry struct {
	Category      string   `yaml:"category"`
	ResultColumns []string `yaml:"resultColumns"`
}

// Schema is the per-category extraction configuration. Categories absent
// from the schema get no extraction at all, even when their names carry
// recognizable dimensions.
type Schema struct {
	entries []SchemaEntry
}

// NewSchema builds a schema from entries in order.
func NewSchema(entries []SchemaEntry) *Schema {
	return &Schema{entries: entries}
}

// LoadSchema reads a schema from a YAML file. A missing file yields an
// empty schema; a corrupt one is a fatal startup condition.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Schema{}, nil
		}
		return nil, errors.NewConfigError("extraction schema", path, err)
	}
	var entries []SchemaEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewConfigError("extraction schema", path, err)
	}
	return &Schema{entries: entries}, nil
}

// Columns returns the attribute columns configured for category, first
// matching entry wins. Nil means no extraction for this category.
func (s *Schema) Columns(category string) []string {
	if s == nil {
		return nil
	}
	for _, e := range s.entries {
		if e.Category == category {
			return e.ResultColumns
		}
	}
	return nil
}

// Len returns the number of schema entries.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
