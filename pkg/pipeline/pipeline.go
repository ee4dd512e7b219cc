// Package pipeline wires the reconciliation stages together: source merge,
// category resolution, variant detection and report generation. One Run is
// one reconciliation; the pipeline itself is stateless between runs apart
// from the category store it shares with its mapper.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/categories"
	"github.com/gastroflow/gastroflow/pkg/errors"
	"github.com/gastroflow/gastroflow/pkg/logging"
	"github.com/gastroflow/gastroflow/pkg/merge"
	"github.com/gastroflow/gastroflow/pkg/reports"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

// Options selects which stages a run performs.
type Options struct {
	MapCategories         bool
	DetectVariants        bool
	GenerateReports       bool
	Override              bool
	ExcludedManufacturers []string
}

// DefaultOptions runs every stage with the default exclusions.
func DefaultOptions() Options {
	return Options{
		MapCategories:         true,
		DetectVariants:        true,
		GenerateReports:       true,
		Override:              true,
		ExcludedManufacturers: variants.DefaultExcludedManufacturers,
	}
}

// Result is the outcome of one reconciliation run.
type Result struct {
	RunID      string
	Table      *catalog.Table
	MergeStats *merge.Stats
	Groups     []variants.Group

	GroupsReportPath      string
	DifferencesReportPath string
}

// ApplyResult is the outcome of re-applying a hand-edited group report.
type ApplyResult struct {
	RunID   string
	Groups  []variants.Group
	Summary *variants.Summary

	SummaryReportPath     string
	DifferencesReportPath string
}

// Pipeline holds the collaborators shared across runs.
type Pipeline struct {
	mapper  *categories.Mapper
	schema  *variants.Schema
	reports *reports.Writer
	logger  *zerolog.Logger
}

// New builds a pipeline. mapper may be nil to disable category resolution
// entirely; reportDir receives the generated text reports.
func New(mapper *categories.Mapper, schema *variants.Schema, reportDir string) *Pipeline {
	return &Pipeline{
		mapper:  mapper,
		schema:  schema,
		reports: reports.NewWriter(reportDir),
		logger:  logging.Default(),
	}
}

// WithLogger overrides the logger.
func (p *Pipeline) WithLogger(l *zerolog.Logger) *Pipeline {
	p.logger = l
	return p
}

// Run executes the reconciliation stages in order. The primary table is
// mutated in place and returned in the result. The category stage is the
// only point that may block on a human, so the context is re-checked
// around every stage.
func (p *Pipeline) Run(ctx context.Context, primary *catalog.Table, feeds []merge.Feed, opts Options) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.Ctx(ctx)

	result := &Result{RunID: runID}

	logger.Info().Int("feeds", len(feeds)).Msg("reconciliation run started")
	result.Table, result.MergeStats = merge.NewMerger().WithLogger(logger).Merge(primary, feeds)
	if err := checkCanceled(ctx); err != nil {
		return result, err
	}

	if opts.MapCategories && p.mapper != nil {
		p.mapper.ApplyToTable(result.Table)
		if err := checkCanceled(ctx); err != nil {
			return result, err
		}
	}

	if opts.DetectVariants {
		matcher := variants.NewMatcher(p.schema).
			WithExcludedManufacturers(opts.ExcludedManufacturers).
			WithLogger(logger)
		result.Groups = matcher.Analyze(result.Table)
		matcher.ApplyGroups(result.Table, result.Groups, opts.Override)
		matcher.ExtractDifferences(result.Table, result.Groups)
		if err := checkCanceled(ctx); err != nil {
			return result, err
		}
	}

	if opts.GenerateReports && len(result.Groups) > 0 {
		var err error
		result.GroupsReportPath, err = p.reports.WriteGroupsFile(result.Groups)
		if err != nil {
			return result, err
		}
		result.DifferencesReportPath, err = p.reports.WriteDifferencesFile(result.Table, result.Groups, p.schema)
		if err != nil {
			return result, err
		}
	}

	if err := result.Table.Validate(); err != nil {
		logger.Warn().Err(err).Msg("merged table failed validation")
	}
	logger.Info().
		Int("records", result.Table.Len()).
		Int("groups", len(result.Groups)).
		Msg("reconciliation run finished")
	return result, nil
}

// ApplyReport re-applies a hand-edited group report onto the table,
// writes the audit summary and, when requested, re-runs difference
// extraction over the resolved groups.
func (p *Pipeline) ApplyReport(ctx context.Context, t *catalog.Table, reportPath string, override, generateDifferences bool) (*ApplyResult, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.Ctx(ctx)

	raw, err := reports.ParseGroupsFile(reportPath)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		logger.Warn().Str("path", reportPath).Msg("report contains no groups")
		return &ApplyResult{RunID: runID}, nil
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	matcher := variants.NewMatcher(p.schema).WithLogger(logger)
	resolved, summary := matcher.ApplyReport(t, raw, override)

	result := &ApplyResult{RunID: runID, Groups: resolved, Summary: summary}
	result.SummaryReportPath, err = p.reports.WriteSummaryFile(summary)
	if err != nil {
		return result, err
	}

	if generateDifferences && len(resolved) > 0 {
		matcher.ExtractDifferences(t, resolved)
		result.DifferencesReportPath, err = p.reports.WriteDifferencesFile(t, resolved, p.schema)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func checkCanceled(ctx context.Context) error {
	if ctx.Err() != nil {
		return errors.ErrCanceled
	}
	return nil
}
