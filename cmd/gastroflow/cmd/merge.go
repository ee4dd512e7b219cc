package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/merge"
)

var mergeOut string

var mergeCmd = &cobra.Command{
	Use:   "merge <primary.yaml> [name=feed.yaml...]",
	Short: "Merge secondary feeds into the primary catalog",
	Long: `Merge folds each named feed into the primary catalog in order.
A feed record with more filled image slots replaces the stored images and
price; price alone always tracks the most recent feed whose value differs
numerically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		primary, err := catalog.LoadTable(args[0])
		if err != nil {
			return err
		}
		feeds, err := loadFeeds(args[1:])
		if err != nil {
			return err
		}

		merged, stats := merge.NewMerger().Merge(primary, feeds)
		printMergeStats(stats)

		if mergeOut == "" {
			mergeOut = args[0]
		}
		return catalog.SaveTable(merged, mergeOut)
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "output catalog file (default: overwrite primary)")
	rootCmd.AddCommand(mergeCmd)
}
