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
	runOut         string
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run <primary.yaml> [name=feed.yaml...]",
	Short: "Run the full reconciliation pipeline",
	Long: `Run executes merge, category resolution and variant detection in
one pass and writes the group and difference reports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		primary, err := catalog.LoadTable(args[0])
		if err != nil {
			return err
		}
		feeds, err := loadFeeds(args[1:])
		if err != nil {
			return err
		}
		mapper, _, err := buildMapper(cfg, runInteractive)
		if err != nil {
			return err
		}
		schema, err := variants.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			MapCategories:         cfg.MapCategories,
			DetectVariants:        cfg.DetectVariants,
			GenerateReports:       cfg.GenerateReports,
			Override:              cfg.Override,
			ExcludedManufacturers: cfg.ExcludedManufacturers,
		}
		result, err := pipeline.New(mapper, schema, cfg.ReportDir).
			Run(cmd.Context(), primary, feeds, opts)
		if err != nil {
			return err
		}

		printMergeStats(result.MergeStats)
		fmt.Printf("Variant groups: %d\n", len(result.Groups))
		if result.GroupsReportPath != "" {
			fmt.Printf("Reports: %s, %s\n", result.GroupsReportPath, result.DifferencesReportPath)
		}

		if runOut == "" {
			runOut = args[0]
		}
		return catalog.SaveTable(result.Table, runOut)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "output catalog file (default: overwrite primary)")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "resolve unknown categories on the terminal")
	rootCmd.AddCommand(runCmd)
}
