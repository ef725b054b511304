package core

import (
	"fmt"

	"github.com/davemolk/sircast/schema"
)

// WindowError reports an unusable window length. Non-positive windows are a
// caller bug and fail the call; over-long windows degrade to an empty series
// with a warning instead, since an empty result is valid, if degenerate.
type WindowError struct {
	Window int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window must be a positive number of periods, got %d", e.Window)
}

// RollingPrevalence estimates a transient compartment (I, H) as the trailing
// w-period sum of incidence:
//
//	prevalence[t] = sum(incidence[t-w+1 .. t])
//
// The result is only defined where a full window of history exists, so the
// first w-1 dates are dropped, never zero-filled: a partial rolling sum would
// understate prevalence while looking like valid data. All sums run in
// double precision with no rounding.
func RollingPrevalence(s *schema.IncidenceSeries, compartment string, w int) (*schema.PrevalenceSeries, []schema.Warning, error) {
	if w <= 0 {
		return nil, nil, &WindowError{Window: w}
	}

	out := &schema.PrevalenceSeries{
		Location:    s.Location,
		Compartment: compartment,
		Unit:        s.Unit,
	}
	if w > len(s.Points) {
		warn := schema.Warning{
			Kind: schema.InsufficientWindow,
			Message: fmt.Sprintf("window %d exceeds series length %d for compartment %s; result is empty",
				w, len(s.Points), compartment),
		}
		return out, []schema.Warning{warn}, nil
	}

	sum := 0.0
	for i, p := range s.Points {
		sum += p.Value
		if i >= w {
			sum -= s.Points[i-w].Value
		}
		if i >= w-1 {
			out.Points = append(out.Points, schema.TimeSeriesPoint{
				Date:     p.Date,
				Location: p.Location,
				Kind:     p.Kind,
				Value:    sum,
			})
		}
	}
	return out, nil, nil
}

// CumulativePrevalence derives a permanent compartment (D) directly from the
// running total: a cumulative input is used as-is, an incidence input is
// summed up first.
func CumulativePrevalence(s *schema.IncidenceSeries, compartment string) *schema.PrevalenceSeries {
	src := s
	if !s.Cumulative {
		src = CumulativeOf(s)
	}
	out := &schema.PrevalenceSeries{
		Location:    src.Location,
		Compartment: compartment,
		Unit:        src.Unit,
	}
	for _, p := range src.Points {
		out.Points = append(out.Points, p)
	}
	return out
}

// RecoveredEstimate derives the raw Recovered compartment as the lagged
// running total of incident cases:
//
//	recovered[t] = cumulative_incidence[t-w]
//
// Cases that entered the infectious compartment at least w periods ago have
// had time to resolve. The raw estimate still counts resolved cases that
// died; the composer removes those once, against the joined cumulative
// deaths value (R = raw R - D), so the subtraction is always date-aligned
// and happens exactly once. Undefined for t < w (insufficient lookback);
// those rows are dropped.
func RecoveredEstimate(cases *schema.IncidenceSeries, w int) (*schema.PrevalenceSeries, []schema.Warning, error) {
	if w <= 0 {
		return nil, nil, &WindowError{Window: w}
	}

	out := &schema.PrevalenceSeries{
		Location:    cases.Location,
		Compartment: schema.CompartmentR,
		Unit:        cases.Unit,
	}
	if w >= len(cases.Points) {
		warn := schema.Warning{
			Kind: schema.InsufficientWindow,
			Message: fmt.Sprintf("window %d leaves no lookback in a series of length %d; recovered estimate is empty",
				w, len(cases.Points)),
		}
		return out, []schema.Warning{warn}, nil
	}

	cum := CumulativeOf(cases)
	for i := w; i < len(cases.Points); i++ {
		out.Points = append(out.Points, schema.TimeSeriesPoint{
			Date:     cases.Points[i].Date,
			Location: cases.Location,
			Value:    cum.Points[i-w].Value,
		})
	}
	return out, nil, nil
}

// HospitalizedPrevalence estimates the H compartment as the trailing w-period
// sum of hospital admissions, minus deaths recorded in the last offset
// periods when a cumulative deaths series is available. Deaths typically
// occur a few periods after admission, so recent decedents are no longer
// occupying the compartment. Pass a nil deaths series (or offset 0) for the
// plain rolling sum.
func HospitalizedPrevalence(hosp *schema.IncidenceSeries, deaths *schema.PrevalenceSeries, w, offset int) (*schema.PrevalenceSeries, []schema.Warning, error) {
	out, warnings, err := RollingPrevalence(hosp, schema.CompartmentH, w)
	if err != nil || deaths == nil || offset <= 0 {
		return out, warnings, err
	}

	for i := range out.Points {
		p := &out.Points[i]
		now, ok := deaths.ValueAt(p.Date)
		if !ok {
			continue
		}
		then, ok := deaths.ValueAt(p.Date.AddDate(0, 0, -offset*daysPerPeriod(hosp.Unit)))
		if !ok {
			continue
		}
		p.Value -= now - then
		if p.Value < 0 {
			warnings = append(warnings, schema.NewWarning(schema.NegativeCompartment, p.Date,
				"hospitalized estimate %g is negative after removing recent deaths", p.Value))
		}
	}
	return out, warnings, nil
}

// daysPerPeriod converts a period unit to calendar days for date shifting.
func daysPerPeriod(unit schema.PeriodUnit) int {
	if unit == schema.WeekUnit {
		return 7
	}
	return 1
}
