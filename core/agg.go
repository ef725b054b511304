package core

import (
	"fmt"
	"sort"

	"github.com/davemolk/sircast/schema"
)

// AggregateByGroup collapses finer-granularity rows (age, gender, sub-region)
// to the requested reporting level by summing values across all rows sharing
// (date, location, kind, groupKeys). Passing no group keys collapses every
// group dimension. When a region key is among the group columns the caller
// keeps each region as its own location, so later stages never mix regions.
func AggregateByGroup(t *schema.CanonicalTable, groupKeys []string) *schema.CanonicalTable {
	type bucket struct {
		row schema.CanonicalRow
	}

	keyOf := func(r schema.CanonicalRow) string {
		k := r.Date.Format(schema.DateOnly) + "|" + r.Location + "|" + string(r.Kind)
		for _, g := range groupKeys {
			k += "|" + g + "=" + r.Groups[g]
		}
		return k
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, r := range t.Rows {
		k := keyOf(r)
		b, ok := buckets[k]
		if !ok {
			var groups map[string]string
			if len(groupKeys) > 0 {
				groups = make(map[string]string, len(groupKeys))
				for _, g := range groupKeys {
					groups[g] = r.Groups[g]
				}
			}
			b = &bucket{row: schema.CanonicalRow{
				Date:     r.Date,
				Location: r.Location,
				Kind:     r.Kind,
				Groups:   groups,
			}}
			buckets[k] = b
			order = append(order, k)
		}
		b.row.Value += r.Value
	}

	out := &schema.CanonicalTable{Unit: t.Unit, Cumulative: t.Cumulative}
	for _, k := range order {
		out.Rows = append(out.Rows, buckets[k].row)
	}
	return out
}

// ExtractSeries pulls the (location, kind) series out of a canonical table,
// sorted by date. Duplicate dates violate the series invariant and are
// reported as a SchemaError; they indicate the caller still has ungrouped
// granularity that AggregateByGroup should have collapsed.
func ExtractSeries(t *schema.CanonicalTable, location string, kind schema.SeriesKind) (*schema.IncidenceSeries, error) {
	s := &schema.IncidenceSeries{
		Location:   location,
		Kind:       kind,
		Unit:       t.Unit,
		Cumulative: t.Cumulative,
	}
	for _, r := range t.Rows {
		if r.Location == location && r.Kind == kind {
			s.Points = append(s.Points, schema.TimeSeriesPoint{
				Date:     r.Date,
				Location: r.Location,
				Kind:     r.Kind,
				Value:    r.Value,
			})
		}
	}
	sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Date.Before(s.Points[j].Date) })

	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Date.Equal(s.Points[i-1].Date) {
			return nil, &SchemaError{Reason: fmt.Sprintf(
				"duplicate date %s for location %q; collapse group columns before extracting a series",
				s.Points[i].Date.Format(schema.DateOnly), location)}
		}
	}
	return s, nil
}

// ToIncidence converts a cumulative series into per-period incidence via
// successive differences. The first point is its own incidence, treating the
// implicit predecessor as zero. Negative differences are reporting
// corrections: they are clamped to zero and recorded as warnings rather than
// failed, since downstream data revisions are routine.
//
// A series not flagged cumulative is returned unchanged.
func ToIncidence(s *schema.IncidenceSeries) (*schema.IncidenceSeries, []schema.Warning) {
	if !s.Cumulative {
		return s, nil
	}

	out := &schema.IncidenceSeries{
		Location: s.Location,
		Kind:     s.Kind,
		Unit:     s.Unit,
	}
	var warnings []schema.Warning
	prev := 0.0
	for _, p := range s.Points {
		diff := p.Value - prev
		if diff < 0 {
			warnings = append(warnings, schema.NewWarning(schema.NegativeCorrection, p.Date,
				"negative difference %g clamped to 0 (reporting correction in %s)", diff, s.Kind))
			diff = 0
		}
		out.Points = append(out.Points, schema.TimeSeriesPoint{
			Date:     p.Date,
			Location: p.Location,
			Kind:     p.Kind,
			Value:    diff,
		})
		prev = p.Value
	}
	return out, warnings
}

// CumulativeOf returns the running total of an incidence series. Inverse of
// ToIncidence for correction-free data.
func CumulativeOf(s *schema.IncidenceSeries) *schema.IncidenceSeries {
	out := &schema.IncidenceSeries{
		Location:   s.Location,
		Kind:       s.Kind,
		Unit:       s.Unit,
		Cumulative: true,
	}
	total := 0.0
	for _, p := range s.Points {
		total += p.Value
		out.Points = append(out.Points, schema.TimeSeriesPoint{
			Date:     p.Date,
			Location: p.Location,
			Kind:     p.Kind,
			Value:    total,
		})
	}
	return out
}
