package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/reports"
	"github.com/gastroflow/gastroflow/pkg/variants"
)

var (
	variantsOut       string
	variantsOverride  bool
	variantsNoReports bool
)

var variantsCmd = &cobra.Command{
	Use:   "variants <catalog.yaml>",
	Short: "Detect variant families and assign parent codes",
	Long: `Variants groups ungrouped products by base-name similarity,
selects a parent per family by natural sort, extracts the per-category
attributes that distinguish the members and writes the group and
difference reports.`,
	Args: cobra.ExactArgs(1),
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

		matcher := variants.NewMatcher(schema).
			WithExcludedManufacturers(cfg.ExcludedManufacturers)
		groups := matcher.Analyze(table)
		assigned := matcher.ApplyGroups(table, groups, variantsOverride)
		matcher.ExtractDifferences(table, groups)
		fmt.Printf("Detected %d groups, assigned %d parent codes\n", len(groups), assigned)

		if !variantsNoReports && len(groups) > 0 {
			writer := reports.NewWriter(cfg.ReportDir)
			groupsPath, err := writer.WriteGroupsFile(groups)
			if err != nil {
				return err
			}
			diffPath, err := writer.WriteDifferencesFile(table, groups, schema)
			if err != nil {
				return err
			}
			fmt.Printf("Reports: %s, %s\n", groupsPath, diffPath)
		}

		if variantsOut == "" {
			variantsOut = args[0]
		}
		return catalog.SaveTable(table, variantsOut)
	},
}

func init() {
	variantsCmd.Flags().StringVarP(&variantsOut, "out", "o", "", "output catalog file (default: overwrite input)")
	variantsCmd.Flags().BoolVar(&variantsOverride, "override", true, "overwrite existing parent codes")
	variantsCmd.Flags().BoolVar(&variantsNoReports, "no-reports", false, "skip report generation")
	rootCmd.AddCommand(variantsCmd)
}
