package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesResults outputs derived series, dispatching based on the output
// format configured. Parquet is reserved for composed tables.
func PrintSeriesResults(results []*schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for composed tables")
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTables(w, results, cfg, fmtFloat, duration)
		}, "Wrote series tables")
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(results []*schema.SeriesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeries(w, results)
	}, "Wrote JSON series")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(results []*schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeries(csvWriter, results, fmtFloat)
	}, "Wrote CSV series")
}

// writeSeriesTables prints one two-column table per series, followed by its
// warnings.
func writeSeriesTables(w io.Writer, results []*schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	for _, r := range results {
		location, label, points := seriesParts(r)

		name := contract.TruncateLabel(location, GetMaxLabelWidth(cfg, 1))
		header := contract.HeaderColor.Sprintf("%s (%s)", name, label)
		if !cfg.UseColors {
			header = fmt.Sprintf("%s (%s)", name, label)
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Date", "Value"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, p := range points {
			data = append(data, []string{p.Date.Format(schema.DateOnly), fmtFloat(p.Value)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if err := writeWarnings(w, r.Warnings, cfg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Derived %d series in %v\n", len(results), duration)
	return err
}

// seriesParts extracts the display pieces of a series result, whichever kind
// of series it carries.
func seriesParts(r *schema.SeriesResult) (location, label string, points []schema.TimeSeriesPoint) {
	if r.Incidence != nil {
		return r.Incidence.Location, string(r.Incidence.Kind), r.Incidence.Points
	}
	return r.Prevalence.Location, fmt.Sprintf("prevalence_%s", r.Prevalence.Compartment), r.Prevalence.Points
}
