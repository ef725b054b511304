// Package cmd defines the command-line interface for sircast.
package cmd

import (
	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(incidenceCmd)
	rootCmd.AddCommand(prevalenceCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("date-col", contract.DefaultDateColumn, "Column holding observation dates")
	rootCmd.PersistentFlags().String("location-col", "", "Column holding location names (empty treats the table as one location)")
	rootCmd.PersistentFlags().String("group-cols", "", "Comma-separated demographic columns to sum away (e.g. age,sex)")
	rootCmd.PersistentFlags().StringP("location", "L", "", "Restrict output to one location")
	rootCmd.PersistentFlags().Float64("population", schema.DefaultPopulation, "Total population for the susceptible residual")
	rootCmd.PersistentFlags().String("period-unit", string(schema.DayUnit), "Reporting period unit: day or week")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji in console messages (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored warning labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags of composeCmd; bound to Viper at run time by sharedSetup
	composeCmd.Flags().String("cases", "", "Path to the case counts dataset")
	composeCmd.Flags().String("cases-col", contract.DefaultCasesColumn, "Column holding case counts")
	composeCmd.Flags().Bool("cases-cumulative", false, "Treat case counts as cumulative")
	composeCmd.Flags().String("deaths", "", "Path to the death counts dataset")
	composeCmd.Flags().String("deaths-col", contract.DefaultDeathsColumn, "Column holding death counts")
	composeCmd.Flags().Bool("deaths-cumulative", false, "Treat death counts as cumulative")
	composeCmd.Flags().String("hosp", "", "Path to the hospitalization counts dataset")
	composeCmd.Flags().String("hosp-col", contract.DefaultHospColumn, "Column holding hospitalization counts")
	composeCmd.Flags().Bool("hosp-cumulative", false, "Treat hospitalization counts as cumulative")
	composeCmd.Flags().Int("infection-window", schema.DefaultInfectionWindow, "Infectious period length in period units")
	composeCmd.Flags().Int("hosp-window", schema.DefaultHospitalWindow, "Hospital stay length in period units")
	composeCmd.Flags().Int("death-offset", schema.DefaultDeathOffset, "Death reporting lag in period units")

	// Flags shared by the single-series commands
	for _, c := range []*cobra.Command{incidenceCmd, prevalenceCmd, describeCmd} {
		c.Flags().StringP("input", "i", "", "Path to the input dataset")
		c.Flags().String("input-col", contract.DefaultInputColumn, "Column holding the counts")
	}
	for _, c := range []*cobra.Command{incidenceCmd, prevalenceCmd} {
		c.Flags().String("kind", "", "Series kind (e.g. incidence_cases, cumulative_deaths)")
		c.Flags().Bool("cumulative", false, "Treat the input counts as cumulative")
	}
	prevalenceCmd.Flags().IntP("window", "w", 0, "Rolling window length in period units (0 uses the infection window)")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
