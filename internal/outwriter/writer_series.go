package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/davemolk/sircast/schema"
)

// writeJSONResultsForSeries marshals the series results, warnings included,
// and writes them.
func writeJSONResultsForSeries(w io.Writer, results []*schema.SeriesResult) error {
	return writeJSON(w, results)
}

// writeCSVResultsForSeries writes series data in long format: one row per
// location, series, and date.
func writeCSVResultsForSeries(w *csv.Writer, results []*schema.SeriesResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"location",
		"series",
		"date",
		"value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range results {
		location, label, points := seriesParts(r)
		for _, p := range points {
			row := []string{
				location,
				label,
				p.Date.Format(schema.DateOnly),
				fmtFloat(p.Value),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
