package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/pkg/catalog"
)

var (
	categoriesOut         string
	categoriesInteractive bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories <catalog.yaml>",
	Short: "Resolve raw categories into the shop taxonomy",
	Long: `Categories maps every record's raw category through the mapping
store. Unknown categories pass through unchanged unless --interactive is
set, in which case the operator resolves them on the terminal and each
answer is persisted immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		table, err := catalog.LoadTable(args[0])
		if err != nil {
			return err
		}
		mapper, store, err := buildMapper(cfg, categoriesInteractive)
		if err != nil {
			return err
		}

		mapper.ApplyToTable(table)
		fmt.Printf("Mapped categories for %d records (%d known mappings)\n", table.Len(), store.Len())

		if categoriesOut == "" {
			categoriesOut = args[0]
		}
		return catalog.SaveTable(table, categoriesOut)
	},
}

func init() {
	categoriesCmd.Flags().StringVarP(&categoriesOut, "out", "o", "", "output catalog file (default: overwrite input)")
	categoriesCmd.Flags().BoolVarP(&categoriesInteractive, "interactive", "i", false, "resolve unknown categories on the terminal")
	rootCmd.AddCommand(categoriesCmd)
}
