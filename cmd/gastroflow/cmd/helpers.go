package cmd

import (
	"fmt"
	"strings"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/categories"
	"github.com/gastroflow/gastroflow/pkg/errors"
	"github.com/gastroflow/gastroflow/pkg/merge"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

// loadFeeds parses name=path arguments into feeds, preserving order.
func loadFeeds(args []string) ([]merge.Feed, error) {
	feeds := make([]merge.Feed, 0, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return nil, errors.NewValidationError("feed", arg, "expected name=path")
		}
		table, err := catalog.LoadTable(path)
		if err != nil {
			return nil, err
		}
		products := make([]catalog.Product, 0, table.Len())
		for _, p := range table.Products() {
			products = append(products, *p)
		}
		feeds = append(feeds, merge.Feed{Name: name, Products: products})
	}
	return feeds, nil
}

// buildMapper loads the mapping store and wires the transform from config.
// interactive attaches the terminal resolver.
func buildMapper(cfg *config.Config, interactive bool) (*categories.Mapper, *categories.Store, error) {
	store := categories.NewStore(cfg.MappingsPath)
	if err := store.Load(); err != nil {
		return nil, nil, err
	}
	mapper := categories.NewMapper(store).WithTransform(categories.Transform{
		Separator: cfg.CategorySeparator,
		Delimiter: cfg.CategoryDelimiter,
		Prefix:    cfg.CategoryPrefix,
	})
	if interactive {
		mapper.WithResolver(newTerminalResolver())
	}
	return mapper, store, nil
}

func printMergeStats(stats *merge.Stats) {
	fmt.Printf("Primary records: %d\n", stats.PrimaryCount)
	for _, src := range stats.Sources {
		if src.Skipped {
			fmt.Printf("  %s: skipped (no usable codes)\n", src.Name)
			continue
		}
		fmt.Printf("  %s: %d added, %d updated\n", src.Name, src.Added, src.Updated)
	}
	fmt.Printf("Total: %d added, %d updated\n", stats.TotalAdded(), stats.TotalUpdated())
}

func printSummary(s *variants.Summary) {
	fmt.Printf("Groups processed: %d\n", s.Groups)
	fmt.Printf("Assignments made: %d\n", s.Assigned)
	if n := len(s.UnmatchedParents) + len(s.UnmatchedProducts); n > 0 {
		fmt.Printf("Unmatched tokens: %d\n", n)
	}
	if n := len(s.AmbiguousParents) + len(s.AmbiguousProducts); n > 0 {
		fmt.Printf("Ambiguous tokens: %d\n", n)
	}
	if n := len(s.OverriddenConflicts); n > 0 {
		fmt.Printf("Conflicts overridden: %d\n", n)
	}
	if n := len(s.SkippedConflicts); n > 0 {
		fmt.Printf("Conflicts skipped: %d\n", n)
	}
}
