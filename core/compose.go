package core

import (
	"sort"
	"time"

	"github.com/davemolk/sircast/schema"
)

// Compose merges per-compartment series for one location into a single
// aligned table:
//
//   - only dates present in every supplied series are retained (inner join),
//     so no row ever has partial arithmetic
//   - Recovered is adjusted to exclude the deceased (R = raw R - D), using
//     the joined D value so the subtraction is always aligned
//   - Susceptible is derived per row as population minus everything else
//
// Any compartment name passes through and participates in the join; the set
// is not limited to {S, I, R, H, D}. Negative values (compartments exceeding
// the population, noisy recovered estimates) are surfaced as warnings and
// never clamped, because clamping would mask a modeling or data error.
func Compose(location string, series map[string]*schema.PrevalenceSeries, population float64) (*schema.CompartmentTable, []schema.Warning) {
	names := make(map[string]struct{}, len(series)+1)
	for name := range series {
		names[name] = struct{}{}
	}
	names[schema.CompartmentS] = struct{}{}

	table := &schema.CompartmentTable{
		Location:     location,
		Population:   population,
		Compartments: schema.OrderCompartments(names),
	}

	dates := joinDates(series)
	var warnings []schema.Warning
	for _, date := range dates {
		values := make(map[string]float64, len(series)+1)
		for name, s := range series {
			v, _ := s.ValueAt(date) // join guarantees presence
			values[name] = v
		}

		if d, ok := values[schema.CompartmentD]; ok {
			if _, ok := values[schema.CompartmentR]; ok {
				values[schema.CompartmentR] -= d
			}
		}

		others := 0.0
		for _, v := range values {
			others += v
		}
		values[schema.CompartmentS] = population - others

		for _, name := range table.Compartments {
			if v := values[name]; v < 0 {
				warnings = append(warnings, schema.NewWarning(schema.NegativeCompartment, date,
					"compartment %s is negative (%g) for %s", name, v, location))
			}
		}

		table.Rows = append(table.Rows, schema.CompartmentRow{Date: date, Values: values})
	}
	return table, warnings
}

// joinDates returns the sorted dates present in every series.
func joinDates(series map[string]*schema.PrevalenceSeries) []time.Time {
	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, p := range s.Points {
			counts[p.Date]++
		}
	}
	var out []time.Time
	for date, n := range counts {
		if n == len(series) {
			out = append(out, date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
