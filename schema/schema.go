// Package schema has configs, models and global variables for all parts of sircast.
package schema

import (
	"sort"
	"time"
)

// TimeSeriesPoint represents a single observation in a surveillance time series.
// Points are immutable once produced by the normalizer.
type TimeSeriesPoint struct {
	Date     time.Time  `json:"date"`     // Calendar date of the observation
	Location string     `json:"location"` // Reporting location key (e.g. "United States")
	Kind     SeriesKind `json:"kind"`     // What the value counts (cases, hospitalizations, deaths)
	Value    float64    `json:"value"`    // Non-negative observed count
}

// IncidenceSeries is an ordered-by-date sequence of points for one
// (location, kind) pair. Dates are strictly increasing with no duplicates.
type IncidenceSeries struct {
	Location   string            `json:"location"`
	Kind       SeriesKind        `json:"kind"`
	Unit       PeriodUnit        `json:"unit"`
	Cumulative bool              `json:"cumulative"` // True when values are running totals
	Points     []TimeSeriesPoint `json:"points"`
}

// Len returns the number of points in the series.
func (s *IncidenceSeries) Len() int { return len(s.Points) }

// Values returns the raw values of the series in date order.
func (s *IncidenceSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// PrevalenceSeries is a derived sequence over the same (date, location) domain
// as its source incidence series. For rolling-window compartments it is at most
// as long as its source, since the first window-1 points lack full history.
type PrevalenceSeries struct {
	Location    string            `json:"location"`
	Compartment string            `json:"compartment"`
	Unit        PeriodUnit        `json:"unit"`
	Points      []TimeSeriesPoint `json:"points"`
}

// Len returns the number of points in the series.
func (s *PrevalenceSeries) Len() int { return len(s.Points) }

// ValueAt returns the value on the given date and whether the date is present.
func (s *PrevalenceSeries) ValueAt(date time.Time) (float64, bool) {
	for _, p := range s.Points {
		if p.Date.Equal(date) {
			return p.Value, true
		}
	}
	return 0, false
}

// CompartmentRow is one fully populated row of a composed table.
type CompartmentRow struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"` // Compartment name -> value
}

// CompartmentTable maps aligned dates onto named compartment values for a
// single location. Rows only exist for dates present in every contributing
// series, so every row is fully populated.
type CompartmentTable struct {
	Location     string           `json:"location"`
	Population   float64          `json:"population"`
	Compartments []string         `json:"compartments"` // Column order for rendering
	Rows         []CompartmentRow `json:"rows"`
}

// RawTable is an unprocessed tabular dataset as loaded from disk: a header
// row plus string cells. The normalizer turns this into canonical points.
type RawTable struct {
	Name    string     // Source label, usually the file path
	Columns []string   // Header names as found in the input
	Rows    [][]string // Cell values, one slice per record
}

// CanonicalRow is a normalized observation with optional grouping columns
// (age band, gender, sub-region) retained for later aggregation.
type CanonicalRow struct {
	Date     time.Time
	Location string
	Kind     SeriesKind
	Value    float64
	Groups   map[string]string // Group column -> value, nil when none declared
}

// CanonicalTable is the output of the schema normalizer: parsed, validated
// rows in the canonical (date, location, kind, value) shape.
type CanonicalTable struct {
	Unit       PeriodUnit
	Cumulative bool
	Rows       []CanonicalRow
}

// Locations returns the distinct location keys in the table, sorted.
func (t *CanonicalTable) Locations() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Rows {
		if _, ok := seen[r.Location]; !ok {
			seen[r.Location] = struct{}{}
			out = append(out, r.Location)
		}
	}
	sort.Strings(out)
	return out
}

// ColumnMapping declares how raw columns map onto canonical roles. It is
// supplied by the caller; the normalizer never guesses column names. Alias
// matching tolerates case and underscore variation of the declared names only.
type ColumnMapping struct {
	DateColumn     string              // Required role
	LocationColumn string              // Optional; empty means single-location data
	ValueColumn    string              // Required role
	GroupColumns   []string            // Optional finer-granularity columns
	Kind           SeriesKind          // Series kind assigned to every row
	Cumulative     bool                // True when the value column is a running total
	Aliases        map[string][]string // Role column name -> accepted raw spellings
	DateLayouts    []string            // Accepted date layouts; defaults used when empty
}

// WindowConfig holds per-compartment resolution window lengths, in the same
// period unit as the input series. Supplied once per pipeline invocation and
// immutable thereafter.
type WindowConfig struct {
	Infection       int `json:"infection"`       // Periods an infection stays active
	Hospitalization int `json:"hospitalization"` // Periods a hospitalization stays active
	DeathOffset     int `json:"death_offset"`    // Lag from hospitalization to death
}

// DefaultWindows returns the standard window configuration for daily data.
func DefaultWindows() WindowConfig {
	return WindowConfig{
		Infection:       DefaultInfectionWindow,
		Hospitalization: DefaultHospitalWindow,
		DeathOffset:     DefaultDeathOffset,
	}
}
