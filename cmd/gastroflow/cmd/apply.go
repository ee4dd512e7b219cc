package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/pipeline"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

var (
	applyOut         string
	applyOverride    bool
	applyDifferences bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <catalog.yaml> <report.txt>",
	Short: "Re-apply a hand-edited variant group report",
	Long: `Apply parses a previously generated, possibly hand-edited group
report and assigns its parent codes back onto the catalog. Catalog entries
in the report may be wildcard tokens (x-runs for digits, * and ?); every
unmatched, ambiguous or conflicting token lands in the audit summary.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		table, err := catalog.LoadTable(args[0])
		if err != nil {
			return err
		}
		schema, err := variants.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return err
		}

		p := pipeline.New(nil, schema, cfg.ReportDir)
		result, err := p.ApplyReport(cmd.Context(), table, args[1], applyOverride, applyDifferences)
		if err != nil {
			return err
		}
		if result.Summary != nil {
			printSummary(result.Summary)
		}
		if result.SummaryReportPath != "" {
			fmt.Printf("Summary report: %s\n", result.SummaryReportPath)
		}

		if applyOut == "" {
			applyOut = args[0]
		}
		return catalog.SaveTable(table, applyOut)
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyOut, "out", "o", "", "output catalog file (default: overwrite input)")
	applyCmd.Flags().BoolVar(&applyOverride, "override", true, "overwrite conflicting parent codes")
	applyCmd.Flags().BoolVar(&applyDifferences, "differences", true, "re-run difference extraction over resolved groups")
	rootCmd.AddCommand(applyCmd)
}
