// Package merge reconciles the primary catalog with named secondary feeds
// into one canonical table keyed by catalog code. The policy is
// image-richness first: a feed record with more filled image slots replaces
// the stored images and price while every other field stays with the
// earlier source. Price alone always tracks the most recently scanned feed
// whose value differs numerically.
package merge

import (
	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/logging"
)

// Feed is one secondary source in scan order. Records are raw, pre-table:
// a feed may legitimately carry duplicate or missing codes and the merger
// owns that cleanup.
type Feed struct {
	Name     string
	Products []catalog.Product
}

// Merger merges feeds into the primary table.
type Merger struct {
	logger *zerolog.Logger
}

// NewMerger returns a merger using the default logger.
func NewMerger() *Merger {
	return &Merger{logger: logging.Default()}
}

// WithLogger overrides the logger.
func (m *Merger) WithLogger(l *zerolog.Logger) *Merger {
	m.logger = l
	return m
}

// Merge folds each feed into the primary table in order and returns the
// table plus per-source statistics. The primary table is mutated in place;
// a nil primary starts empty. A feed with no usable codes is skipped with
// a warning rather than failing the run.
func (m *Merger) Merge(primary *catalog.Table, feeds []Feed) (*catalog.Table, *Stats) {
	merged := primary
	if merged == nil {
		merged = catalog.NewTable()
	}
	stats := NewStats(merged.Len())

	for _, feed := range feeds {
		src := stats.Source(feed.Name)
		records := m.dedupe(feed)
		if len(records) == 0 {
			src.Skipped = true
			m.logger.Warn().Str("source", feed.Name).Msg("source has no usable catalog codes, skipping")
			continue
		}
		for _, rec := range records {
			m.mergeRecord(merged, feed.Name, rec, src)
		}
		m.logger.Info().
			Str("source", feed.Name).
			Int("added", src.Added).
			Int("updated", src.Updated).
			Msg("source merged")
	}
	return merged, stats
}

// dedupe keeps the first occurrence of each code but propagates the last
// occurrence's price onto it. Records without a code are dropped.
func (m *Merger) dedupe(feed Feed) []*catalog.Product {
	var order []*catalog.Product
	index := make(map[string]*catalog.Product)

	for i := range feed.Products {
		rec := feed.Products[i].Clone()
		rec.Code = catalog.NormalizeCode(rec.Code)
		if rec.Code == "" {
			m.logger.Warn().Str("source", feed.Name).Str("name", rec.Name).Msg("record without catalog code, dropping")
			continue
		}
		if first, seen := index[rec.Code]; seen {
			first.Price = rec.Price
			continue
		}
		index[rec.Code] = rec
		order = append(order, rec)
	}
	return order
}

func (m *Merger) mergeRecord(merged *catalog.Table, source string, rec *catalog.Product, src *SourceStats) {
	existing, ok := merged.Get(rec.Code)
	if !ok {
		rec.Source = source
		rec.LastUpdated = utc.Now()
		if err := merged.Add(rec); err != nil {
			m.logger.Warn().Err(err).Str("source", source).Str("code", rec.Code).Msg("failed to add record")
			return
		}
		src.Added++
		return
	}

	changed := false
	if rec.ImageCount() > existing.ImageCount() {
		existing.Images = append([]string(nil), rec.Images...)
		existing.Price = rec.Price
		changed = true
	} else if _, priced := rec.DecimalPrice(); priced && !existing.PriceEquals(rec) {
		existing.Price = rec.Price
		changed = true
	}
	if changed {
		existing.Source = source
		existing.LastUpdated = utc.Now()
		src.Updated++
	}
}
