package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/internal/parquet"
	"github.com/davemolk/sircast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintComposeResults outputs composed compartment tables, dispatching based
// on the output format configured.
func PrintComposeResults(result *schema.ComposeResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForCompose(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForCompose(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForCompose(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComposeTables(w, result, cfg, fmtFloat, duration)
		}, "Wrote compartment tables")
	}
	return nil
}

// printJSONResultsForCompose handles opening the file and calling the JSON writer.
func printJSONResultsForCompose(result *schema.ComposeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForCompose(w, result)
	}, "Wrote JSON compartment tables")
}

// printCSVResultsForCompose handles opening the file and calling the CSV writer.
func printCSVResultsForCompose(result *schema.ComposeResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForCompose(csvWriter, result, fmtFloat)
	}, "Wrote CSV compartment tables")
}

// printParquetResultsForCompose flattens the composed tables into records and
// writes a single Parquet file.
func printParquetResultsForCompose(result *schema.ComposeResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires an output file")
	}
	records := parquet.ConvertComposeResult(result)
	if err := parquet.WriteCompartmentRecordsParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d compartment records to: %s\n", len(records), cfg.OutputFile)
	return nil
}

// writeComposeTables prints one table per location, each followed by the
// warnings its series accumulated.
func writeComposeTables(w io.Writer, result *schema.ComposeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	for _, r := range result.Results {
		if err := writeCompartmentTable(w, r, cfg, fmtFloat); err != nil {
			return err
		}
		if err := writeWarnings(w, r.Warnings, cfg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Composed %d location(s) in %v\n", len(result.Results), duration)
	return err
}

// writeCompartmentTable renders one location's compartment table.
func writeCompartmentTable(w io.Writer, r *schema.LocationResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	label := contract.TruncateLabel(r.Table.Location, GetMaxLabelWidth(cfg, len(r.Table.Compartments)))
	header := contract.HeaderColor.Sprintf("%s (population %s)", label, fmtFloat(r.Table.Population))
	if !cfg.UseColors {
		header = fmt.Sprintf("%s (population %s)", label, fmtFloat(r.Table.Population))
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Date"}
	headers = append(headers, r.Table.Compartments...)
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, row := range r.Table.Rows {
		rec := []string{row.Date.Format(schema.DateOnly)}
		for _, c := range r.Table.Compartments {
			rec = append(rec, fmtFloat(row.Values[c]))
		}
		data = append(data, rec)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
