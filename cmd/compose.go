package cmd

import (
	"github.com/davemolk/sircast/core"
	"github.com/davemolk/sircast/internal/contract"
	"github.com/spf13/cobra"
)

// composeCmd builds the full compartment table.
var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Build an S/I/R/H/D compartment table from surveillance counts.",
	Long: `Convert case, death, and hospitalization counts into a compartment table.

Each input dataset is normalized, aggregated to one row per date and location,
and converted to a prevalence estimate:
- I is the rolling sum of case incidence over the infection window
- R is cumulative incidence shifted by the infection window, minus deaths
- H is the rolling sum of admissions minus recent deaths
- D is cumulative deaths
- S is the population residual after all other compartments

Dates and locations present in every provided dataset survive into the final
table; everything else is dropped with a warning.

Examples:
  # Cases only, default windows
  sircast compose --cases cases.csv

  # Full pipeline with cumulative inputs
  sircast compose --cases cases.csv --cases-cumulative \
    --deaths deaths.csv --deaths-cumulative --hosp hosp.csv

  # One location, weekly data, custom windows
  sircast compose --cases cases.csv --location "New York" \
    --period-unit week --infection-window 2 --hosp-window 1

  # Export for model calibration
  sircast compose --cases cases.csv --output csv --output-file sir.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompose(cfg, datasets, storeManager.GetRunStore()); err != nil {
			contract.LogFatal("Cannot compose compartments", err)
		}
	},
}
