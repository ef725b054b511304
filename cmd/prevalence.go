package cmd

import (
	"github.com/davemolk/sircast/core"
	"github.com/davemolk/sircast/internal/contract"
	"github.com/spf13/cobra"
)

// prevalenceCmd converts a single dataset to rolling prevalence.
var prevalenceCmd = &cobra.Command{
	Use:   "prevalence",
	Short: "Convert a count series to rolling-window prevalence.",
	Long: `Normalize a single dataset and emit one prevalence series per location.

Prevalence at each date is the sum of incidence over the trailing window,
approximating how many subjects are simultaneously in the state. Cumulative
inputs are differenced first. Series shorter than the window produce an
empty result with a warning.

Examples:
  # 14-period infectious prevalence from incident cases
  sircast prevalence --input cases.csv --window 14

  # From a cumulative series
  sircast prevalence --input cases.csv --cumulative --window 14

  # Hospital census from weekly admissions
  sircast prevalence --input hosp.csv --period-unit week --window 2`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrevalence(cfg, datasets); err != nil {
			contract.LogFatal("Cannot derive prevalence", err)
		}
	},
}
