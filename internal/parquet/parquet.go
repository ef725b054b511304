// Package parquet provides data structures and functions for exporting
// composed compartment data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/davemolk/sircast/schema"
	"github.com/parquet-go/parquet-go"
)

// PipelineRun represents a single pipeline run with metadata.
// This struct maps to the sircast_pipeline_runs database table.
type PipelineRun struct {
	// RunID is the unique identifier for this pipeline run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRows is the number of compartment rows produced by this run
	TotalRows int32 `parquet:"total_rows,snappy"`

	// ConfigParams contains the JSON-encoded pipeline parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CompartmentRecord represents one compartment value on one date for one
// location, the long-format flattening of a composed table.
type CompartmentRecord struct {
	// Location is the geographic unit the value belongs to
	Location string `parquet:"location,snappy"`

	// Date is the observation date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Compartment is the compartment name (S, I, R, H, D, or an extra)
	Compartment string `parquet:"compartment,snappy"`

	// Value is the estimated number of individuals in the compartment
	Value float64 `parquet:"value,snappy"`

	// Population is the fixed population constant used for the susceptible residual
	Population float64 `parquet:"population,snappy"`
}

// WritePipelineRunsParquet writes a slice of PipelineRun structs to a Parquet file.
func WritePipelineRunsParquet(data []PipelineRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the PipelineRun struct tags
	writer := parquet.NewGenericWriter[PipelineRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCompartmentRecordsParquet writes a slice of CompartmentRecord structs to a Parquet file.
func WriteCompartmentRecordsParquet(data []CompartmentRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the CompartmentRecord struct tags
	writer := parquet.NewGenericWriter[CompartmentRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertComposeResult flattens composed tables into long-format records for
// Parquet export. Compartment order within a date follows the table's display
// order.
func ConvertComposeResult(result *schema.ComposeResult) []CompartmentRecord {
	var records []CompartmentRecord
	for _, r := range result.Results {
		for _, row := range r.Table.Rows {
			for _, c := range r.Table.Compartments {
				records = append(records, CompartmentRecord{
					Location:    r.Table.Location,
					Date:        row.Date,
					Compartment: c,
					Value:       row.Values[c],
					Population:  r.Table.Population,
				})
			}
		}
	}
	return records
}

// ConvertRunRecords converts stored run rows to PipelineRun for Parquet export.
func ConvertRunRecords(records []schema.PipelineRunRecord) []PipelineRun {
	result := make([]PipelineRun, len(records))
	for i, record := range records {
		result[i] = PipelineRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRows:     record.TotalRows,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}
