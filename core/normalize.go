// Package core has the pipeline logic for normalizing, aggregating and
// converting surveillance series into compartment tables.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davemolk/sircast/schema"
)

// SchemaError reports a structural problem with an input table: a missing
// required column, an unparseable date, or a negative declared count. These
// abort the call at the normalizer boundary.
type SchemaError struct {
	Column string // Offending column role or name
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("schema error: %s", e.Reason)
	}
	return fmt.Sprintf("schema error in column %q: %s", e.Column, e.Reason)
}

// canonicalName flattens case and underscore variation so that declared
// aliases like "Date_Reported" match a raw header "date reported". Matching
// is only ever performed against names the caller declared, never guessed.
func canonicalName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// resolveColumn finds the index of the raw header matching the declared role
// column or one of its aliases. Returns -1 when absent.
func resolveColumn(headers []string, declared string, aliases []string) int {
	accepted := make(map[string]struct{}, len(aliases)+1)
	accepted[canonicalName(declared)] = struct{}{}
	for _, a := range aliases {
		accepted[canonicalName(a)] = struct{}{}
	}
	for i, h := range headers {
		if _, ok := accepted[canonicalName(h)]; ok {
			return i
		}
	}
	return -1
}

// parseDate tries each accepted layout in order.
func parseDate(raw string, layouts []string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// Normalize maps a raw table onto the canonical (date, location, kind, value)
// shape using the caller-supplied column mapping. It is a read-only transform:
// the raw table is never modified.
//
// Failure modes, all fatal per the error-handling contract:
//   - a required role column (date, value) cannot be resolved
//   - a date cell cannot be parsed with any accepted layout
//   - a declared value is negative (corrections are handled later, on
//     successive differences, not on declared observations)
func Normalize(raw *schema.RawTable, mapping schema.ColumnMapping, unit schema.PeriodUnit) (*schema.CanonicalTable, error) {
	dateIdx := resolveColumn(raw.Columns, mapping.DateColumn, mapping.Aliases[mapping.DateColumn])
	if dateIdx < 0 {
		return nil, &SchemaError{Column: mapping.DateColumn, Reason: "required date column not found"}
	}
	valueIdx := resolveColumn(raw.Columns, mapping.ValueColumn, mapping.Aliases[mapping.ValueColumn])
	if valueIdx < 0 {
		return nil, &SchemaError{Column: mapping.ValueColumn, Reason: "required value column not found"}
	}

	locIdx := -1
	if mapping.LocationColumn != "" {
		locIdx = resolveColumn(raw.Columns, mapping.LocationColumn, mapping.Aliases[mapping.LocationColumn])
		if locIdx < 0 {
			return nil, &SchemaError{Column: mapping.LocationColumn, Reason: "declared location column not found"}
		}
	}

	groupIdx := make(map[string]int, len(mapping.GroupColumns))
	for _, g := range mapping.GroupColumns {
		idx := resolveColumn(raw.Columns, g, mapping.Aliases[g])
		if idx < 0 {
			return nil, &SchemaError{Column: g, Reason: "declared group column not found"}
		}
		groupIdx[g] = idx
	}

	layouts := mapping.DateLayouts
	if len(layouts) == 0 {
		layouts = schema.DefaultDateLayouts
	}

	table := &schema.CanonicalTable{Unit: unit, Cumulative: mapping.Cumulative}
	for n, row := range raw.Rows {
		if len(row) <= dateIdx || len(row) <= valueIdx {
			return nil, &SchemaError{Reason: fmt.Sprintf("row %d has %d cells, fewer than the declared columns", n+1, len(row))}
		}

		date, err := parseDate(row[dateIdx], layouts)
		if err != nil {
			return nil, &SchemaError{Column: mapping.DateColumn, Reason: fmt.Sprintf("row %d: %v", n+1, err)}
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil {
			return nil, &SchemaError{Column: mapping.ValueColumn, Reason: fmt.Sprintf("row %d: unparseable value %q", n+1, row[valueIdx])}
		}
		if value < 0 {
			return nil, &SchemaError{Column: mapping.ValueColumn, Reason: fmt.Sprintf("row %d: negative declared value %v", n+1, value)}
		}

		location := schema.DefaultLocation
		if locIdx >= 0 {
			location = strings.TrimSpace(row[locIdx])
		}

		var groups map[string]string
		if len(groupIdx) > 0 {
			groups = make(map[string]string, len(groupIdx))
			for g, idx := range groupIdx {
				if len(row) > idx {
					groups[g] = strings.TrimSpace(row[idx])
				}
			}
		}

		table.Rows = append(table.Rows, schema.CanonicalRow{
			Date:     date,
			Location: location,
			Kind:     mapping.Kind,
			Value:    value,
			Groups:   groups,
		})
	}

	return table, nil
}

// FilterLocation returns only the rows whose location matches the filter
// exactly. Used to select a national aggregate (e.g. "United States") when a
// per-region breakdown is not requested.
func FilterLocation(t *schema.CanonicalTable, location string) *schema.CanonicalTable {
	out := &schema.CanonicalTable{Unit: t.Unit, Cumulative: t.Cumulative}
	for _, r := range t.Rows {
		if r.Location == location {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
