package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/internal/loader"
	"github.com/davemolk/sircast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDescribeResults summarizes a raw dataset column by column, dispatching
// based on the output format configured.
func PrintDescribeResults(raw *schema.RawTable, cfg *contract.Config) error {
	summary := loader.Describe(raw)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON dataset summary")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDescribe(w, summary)
		}, "Wrote CSV dataset summary")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported for composed tables")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDescribeTable(w, summary, cfg)
		}, "Wrote dataset summary")
	}
}

// writeCSVResultsForDescribe writes the per-column summary as CSV rows.
func writeCSVResultsForDescribe(w io.Writer, summary *loader.DatasetSummary) error {
	header := []string{"column", "distinct_count", "samples"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, col := range summary.Columns {
			rec := []string{
				col.Name,
				strconv.Itoa(col.DistinctCount),
				strings.Join(col.Samples, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDescribeTable renders the summary as a three-column table.
func writeDescribeTable(w io.Writer, summary *loader.DatasetSummary, cfg *contract.Config) error {
	header := contract.HeaderColor.Sprintf("%s (%d rows)", summary.Name, summary.RowCount)
	if !cfg.UseColors {
		header = fmt.Sprintf("%s (%d rows)", summary.Name, summary.RowCount)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Column", "Distinct", "Samples"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, col := range summary.Columns {
		data = append(data, []string{
			col.Name,
			strconv.Itoa(col.DistinctCount),
			strings.Join(col.Samples, ", "),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
