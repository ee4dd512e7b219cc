package merge

// SourceStats counts the outcome of merging one feed.
type SourceStats struct {
	Name    string `yaml:"name"`
	Added   int    `yaml:"added"`
	Updated int    `yaml:"updated"`
	Skipped bool   `yaml:"skipped,omitempty"`
}

// Stats is the per-run merge outcome, one entry per feed in scan order.
type Stats struct {
	PrimaryCount int            `yaml:"primaryCount"`
	Sources      []*SourceStats `yaml:"sources"`
}

// NewStats starts a stats record for a run seeded with primaryCount records.
func NewStats(primaryCount int) *Stats {
	return &Stats{PrimaryCount: primaryCount}
}

// Source returns the stats entry for name, creating it on first use.
func (s *Stats) Source(name string) *SourceStats {
	for _, src := range s.Sources {
		if src.Name == name {
			return src
		}
	}
	src := &SourceStats{Name: name}
	s.Sources = append(s.Sources, src)
	return src
}

// TotalAdded sums added counts across sources.
func (s *Stats) TotalAdded() int {
	total := 0
	for _, src := range s.Sources {
		total += src.Added
	}
	return total
}

// TotalUpdated sums updated counts across sources.
func (s *Stats) TotalUpdated() int {
	total := 0
	for _, src := range s.Sources {
		total += src.Updated
	}
	return total
}
