package iostore

import (
	"errors"
	"fmt"

	"github.com/davemolk/sircast/internal/parquet"
)

// ExecuteRunExport performs the export of recorded runs to a Parquet file.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no recorded runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total pipeline runs: %d\n", status.TotalRuns)
	fmt.Printf("Total compartment rows: %d\n", status.TotalRows)

	// Retrieve all recorded runs
	runs, err := store.Runs()
	if err != nil {
		return fmt.Errorf("failed to retrieve pipeline runs: %w", err)
	}

	// Convert to Parquet format and write
	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".pipeline_runs.parquet"
	if err := parquet.WritePipelineRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write pipeline runs: %w", err)
	}
	fmt.Printf("Exported %d pipeline runs to: %s\n", len(parquetRuns), runsFile)

	return nil
}
