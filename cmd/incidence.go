package cmd

import (
	"github.com/davemolk/sircast/core"
	"github.com/davemolk/sircast/internal/contract"
	"github.com/spf13/cobra"
)

// incidenceCmd converts a single dataset to per-period incidence.
var incidenceCmd = &cobra.Command{
	Use:   "incidence",
	Short: "Convert a count series to per-period incidence.",
	Long: `Normalize a single dataset and emit one incidence series per location.

Cumulative inputs are converted to new counts per period by differencing.
Negative differences (reporting corrections) are clamped to zero and flagged
with a warning. Non-cumulative inputs pass through after aggregation.

Examples:
  # Already-incident data; just normalize and aggregate
  sircast incidence --input cases.csv --input-col new_cases

  # Difference a cumulative series
  sircast incidence --input cases.csv --cumulative

  # Weekly data summed over demographic groups
  sircast incidence --input cases.csv --period-unit week --group-cols age,sex`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIncidence(cfg, datasets); err != nil {
			contract.LogFatal("Cannot derive incidence", err)
		}
	},
}
