package cmd

import (
	"github.com/davemolk/sircast/core"
	"github.com/davemolk/sircast/internal/contract"
	"github.com/spf13/cobra"
)

// describeCmd summarizes the columns of a raw dataset.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the columns of a dataset before mapping it.",
	Long: `Load a dataset and print each column with its distinct value count and
sample values. Useful for picking --date-col, --location-col, and value
columns before running the pipeline.

Examples:
  sircast describe --input cases.csv
  sircast describe --input cases.csv --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDescribe(cfg, datasets); err != nil {
			contract.LogFatal("Cannot describe dataset", err)
		}
	},
}
