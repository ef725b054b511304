// Package loader reads raw tabular datasets from disk into memory. It plays
// the external-collaborator role for the pipeline core, which only ever sees
// already-loaded tables.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/schema"
)

// CSVLoader loads comma-separated datasets.
type CSVLoader struct{}

var _ contract.DatasetLoader = &CSVLoader{} // Compile-time check

// NewCSVLoader creates a CSV dataset loader.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads the CSV file at path into a raw table. The first record is the
// header; ragged records are rejected by the CSV reader itself.
func (l *CSVLoader) Load(path string) (*schema.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	return &schema.RawTable{
		Name:    path,
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// ColumnSummary describes one raw column for an analyst deciding on a
// column mapping.
type ColumnSummary struct {
	Name          string   `json:"name"`
	DistinctCount int      `json:"distinct_count"`
	Samples       []string `json:"samples"` // Up to maxSamples distinct values, sorted
}

// DatasetSummary is the per-column briefing produced by Describe.
type DatasetSummary struct {
	Name     string          `json:"name"`
	RowCount int             `json:"row_count"`
	Columns  []ColumnSummary `json:"columns"`
}

const maxSamples = 5

// Describe summarizes a raw table column by column: distinct value counts and
// a few sample values. This mirrors the dataset briefing the original
// analysis workflow presents before any transformation is chosen.
func Describe(raw *schema.RawTable) *DatasetSummary {
	summary := &DatasetSummary{
		Name:     raw.Name,
		RowCount: len(raw.Rows),
	}
	for i, col := range raw.Columns {
		distinct := make(map[string]struct{})
		for _, row := range raw.Rows {
			if len(row) > i {
				distinct[row[i]] = struct{}{}
			}
		}
		samples := make([]string, 0, len(distinct))
		for v := range distinct {
			samples = append(samples, v)
		}
		sort.Strings(samples)
		if len(samples) > maxSamples {
			samples = samples[:maxSamples]
		}
		summary.Columns = append(summary.Columns, ColumnSummary{
			Name:          col,
			DistinctCount: len(distinct),
			Samples:       samples,
		})
	}
	return summary
}
