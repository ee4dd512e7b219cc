// Package categories maps raw source categories onto the canonical shop
// taxonomy. Known mappings live in an append-only YAML store; unknown
// categories go through an optional interactive Resolver with fuzzy
// suggestions, and every resolution is persisted immediately so the same
// raw category never prompts twice. A final Transform rewrites the
// hierarchy separator and prepends the taxonomy namespace.
package categories

import (
	"os"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/gastroflow/gastroflow/internal/textnorm"
	"github.com/gastroflow/gastroflow/pkg/constants"
	"github.com/gastroflow/gastroflow/pkg/errors"
)

// Mapping is one persisted category translation.
type Mapping struct {
	OldCategory string `yaml:"oldCategory"`
	NewCategory string `yaml:"newCategory"`
}

// Store holds category mappings backed by a YAML file. Lookups are exact
// under text normalization and insertion-ordered, so when the file carries
// duplicate old categories the first entry wins. Add is single-writer:
// it appends one entry and flushes the whole store under the lock.
type Store struct {
	path string

	mu      sync.Mutex
	entries []Mapping
	index   map[string]int
}

// NewStore returns a store backed by path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path, index: make(map[string]int)}
}

// Load reads the backing file. A missing file leaves the store empty; an
// unreadable or unparseable file is a fatal startup condition and surfaces
// as a ConfigError.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewConfigError("category mappings", s.path, err)
	}
	var entries []Mapping
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return errors.NewConfigError("category mappings", s.path, err)
	}
	s.entries = s.entries[:0]
	s.index = make(map[string]int, len(entries))
	for _, e := range entries {
		s.appendLocked(e)
	}
	return nil
}

// Reload discards the in-memory state and re-reads the backing file.
func (s *Store) Reload() error {
	s.mu.Lock()
	s.entries = nil
	s.index = make(map[string]int)
	s.mu.Unlock()
	return s.Load()
}

// Find returns the mapped category for raw, matched exactly under text
// normalization.
func (s *Store) Find(raw string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[textnorm.Normalize(raw)]
	if !ok {
		return "", false
	}
	return s.entries[i].NewCategory, true
}

// Add records a new mapping and flushes the store. Re-adding a known old
// category is a no-op so a resolution raced by two callers is persisted
// once.
func (s *Store) Add(old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[textnorm.Normalize(old)]; exists {
		return nil
	}
	s.appendLocked(Mapping{OldCategory: old, NewCategory: new})
	return s.flushLocked()
}

// Flush rewrites the backing file from memory.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Len returns the number of distinct mappings.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Mappings returns a copy of the entries in insertion order.
func (s *Store) Mappings() []Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Mapping, len(s.entries))
	copy(out, s.entries)
	return out
}

// Targets returns the distinct mapped-to categories in insertion order.
// These seed the suggestion candidate pool.
func (s *Store) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.entries))
	var out []string
	for _, e := range s.entries {
		if e.NewCategory == "" {
			continue
		}
		if _, ok := seen[e.NewCategory]; ok {
			continue
		}
		seen[e.NewCategory] = struct{}{}
		out = append(out, e.NewCategory)
	}
	return out
}

func (s *Store) appendLocked(e Mapping) {
	key := textnorm.Normalize(e.OldCategory)
	if _, exists := s.index[key]; exists {
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, e)
}

func (s *Store) flushLocked() error {
	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}
	if err := os.WriteFile(s.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}
