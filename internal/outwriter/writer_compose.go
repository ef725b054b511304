package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/davemolk/sircast/schema"
)

// writeJSONResultsForCompose marshals the full compose result, warnings
// included, and writes it.
func writeJSONResultsForCompose(w io.Writer, result *schema.ComposeResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForCompose writes the composed tables in wide format: one
// row per location and date, one column per compartment. Compartment columns
// are the union across locations; a location missing a compartment leaves the
// cell empty.
func writeCSVResultsForCompose(w *csv.Writer, result *schema.ComposeResult, fmtFloat func(float64) string) error {
	compartments := unionCompartments(result)

	// 1. Write Header Row
	header := []string{"location", "date"}
	header = append(header, compartments...)
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range result.Results {
		for _, row := range r.Table.Rows {
			rec := []string{r.Table.Location, row.Date.Format(schema.DateOnly)}
			for _, c := range compartments {
				if v, ok := row.Values[c]; ok {
					rec = append(rec, fmtFloat(v))
				} else {
					rec = append(rec, "")
				}
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// unionCompartments collects every compartment present in any location, in
// display order.
func unionCompartments(result *schema.ComposeResult) []string {
	seen := make(map[string]struct{})
	for _, r := range result.Results {
		for _, c := range r.Table.Compartments {
			seen[c] = struct{}{}
		}
	}
	return schema.OrderCompartments(seen)
}
