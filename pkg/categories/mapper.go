package categories

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/gastroflow/gastroflow/internal/textnorm"
	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/logging"
)

// Resolver decides a canonical category for an unmapped raw value. It gets
// the raw category, a product name hint and ranked suggestions; ok=false
// means the resolver declined and the raw value stays as-is.
type Resolver interface {
	Resolve(raw, nameHint string, suggestions []Suggestion) (resolved string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(raw, nameHint string, suggestions []Suggestion) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(raw, nameHint string, suggestions []Suggestion) (string, bool) {
	return f(raw, nameHint, suggestions)
}

// Mapper translates raw categories through, in order: the persistent store,
// in-memory custom overrides, the already-final check, then the interactive
// resolver. Every resolver answer, including a decline, is persisted
// immediately as a mapping so an identical raw category never prompts again.
// Mapping never fails; the worst case is the raw value passed through.
type Mapper struct {
	store     *Store
	custom    map[string]string
	resolver  Resolver
	transform Transform
	logger    *zerolog.Logger
}

// NewMapper builds a mapper over a loaded store with the default transform.
func NewMapper(store *Store) *Mapper {
	return &Mapper{
		store:     store,
		transform: DefaultTransform(),
		logger:    logging.Default(),
	}
}

// WithResolver sets the interactive resolver.
func (m *Mapper) WithResolver(r Resolver) *Mapper {
	m.resolver = r
	return m
}

// WithTransform overrides the final transform.
func (m *Mapper) WithTransform(t Transform) *Mapper {
	m.transform = t
	return m
}

// WithLogger overrides the logger.
func (m *Mapper) WithLogger(l *zerolog.Logger) *Mapper {
	m.logger = l
	return m
}

// SetCustomMappings installs in-memory overrides consulted after the store.
// They are not persisted.
func (m *Mapper) SetCustomMappings(mappings map[string]string) {
	m.custom = make(map[string]string, len(mappings))
	for old, new := range mappings {
		m.custom[textnorm.Normalize(old)] = new
	}
}

// Map resolves one raw category. nameHint is shown to the resolver for
// context. The final transform is always applied to the result.
func (m *Mapper) Map(raw, nameHint string) string {
	resolved := m.resolve(raw, nameHint)
	return m.transform.Apply(resolved)
}

func (m *Mapper) resolve(raw, nameHint string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if mapped, ok := m.store.Find(trimmed); ok {
		return mapped
	}
	if mapped, ok := m.custom[textnorm.Normalize(trimmed)]; ok {
		return mapped
	}
	// Already in final form: nothing to resolve.
	if m.transform.Prefix != "" && strings.HasPrefix(trimmed, m.transform.Prefix) {
		return trimmed
	}
	if m.resolver == nil {
		return trimmed
	}

	suggestions := Suggest(trimmed, m.store.Targets(), 0)
	resolved, ok := m.resolver.Resolve(trimmed, nameHint, suggestions)
	if !ok || strings.TrimSpace(resolved) == "" {
		// A decline is persisted as an identity mapping so the same raw
		// category does not prompt again.
		resolved = trimmed
	}
	if err := m.store.Add(trimmed, resolved); err != nil {
		m.logger.Warn().Err(err).Str("category", trimmed).Msg("failed to persist category mapping")
	}
	return resolved
}

// ApplyToTable maps the category of every record in place.
func (m *Mapper) ApplyToTable(t *catalog.Table) {
	for _, p := range t.Products() {
		p.Category = m.Map(p.Category, p.Name)
	}
}
