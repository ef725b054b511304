package core

import (
	"testing"
	"time"

	"github.com/davemolk/sircast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC)
}

func incidenceSeries(values ...float64) *schema.IncidenceSeries {
	s := &schema.IncidenceSeries{
		Location: schema.DefaultLocation,
		Kind:     schema.IncidenceCases,
		Unit:     schema.DayUnit,
	}
	for i, v := range values {
		s.Points = append(s.Points, schema.TimeSeriesPoint{
			Date: day(i + 1), Location: s.Location, Kind: s.Kind, Value: v,
		})
	}
	return s
}

func cumulativeSeries(values ...float64) *schema.IncidenceSeries {
	s := incidenceSeries(values...)
	s.Cumulative = true
	return s
}

func TestAggregateByGroupCollapsesAll(t *testing.T) {
	table := &schema.CanonicalTable{Rows: []schema.CanonicalRow{
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 5, Groups: map[string]string{"age": "0-17"}},
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 20, Groups: map[string]string{"age": "18-64"}},
		{Date: day(2), Location: "US", Kind: schema.IncidenceCases, Value: 7, Groups: map[string]string{"age": "0-17"}},
	}}

	out := AggregateByGroup(table, nil)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 25.0, out.Rows[0].Value)
	assert.Equal(t, 7.0, out.Rows[1].Value)
}

func TestAggregateByGroupRetainsRequestedKeys(t *testing.T) {
	table := &schema.CanonicalTable{Rows: []schema.CanonicalRow{
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 5, Groups: map[string]string{"age": "0-17", "gender": "f"}},
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 6, Groups: map[string]string{"age": "0-17", "gender": "m"}},
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 20, Groups: map[string]string{"age": "18-64", "gender": "f"}},
	}}

	out := AggregateByGroup(table, []string{"age"})
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 11.0, out.Rows[0].Value) // genders collapsed within 0-17
	assert.Equal(t, "0-17", out.Rows[0].Groups["age"])
	assert.Equal(t, 20.0, out.Rows[1].Value)
}

func TestAggregateKeepsLocationsApart(t *testing.T) {
	table := &schema.CanonicalTable{Rows: []schema.CanonicalRow{
		{Date: day(1), Location: "Ohio", Kind: schema.IncidenceCases, Value: 5},
		{Date: day(1), Location: "Alaska", Kind: schema.IncidenceCases, Value: 3},
	}}

	out := AggregateByGroup(table, nil)
	require.Len(t, out.Rows, 2) // locations never merge
}

func TestExtractSeriesSortsAndValidates(t *testing.T) {
	table := &schema.CanonicalTable{Unit: schema.DayUnit, Rows: []schema.CanonicalRow{
		{Date: day(2), Location: "US", Kind: schema.IncidenceCases, Value: 2},
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 1},
		{Date: day(3), Location: "Ohio", Kind: schema.IncidenceCases, Value: 9},
	}}

	s, err := ExtractSeries(table, "US", schema.IncidenceCases)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, s.Values())
}

func TestExtractSeriesDuplicateDates(t *testing.T) {
	table := &schema.CanonicalTable{Rows: []schema.CanonicalRow{
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 1},
		{Date: day(1), Location: "US", Kind: schema.IncidenceCases, Value: 2},
	}}

	_, err := ExtractSeries(table, "US", schema.IncidenceCases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate date")
}

func TestToIncidenceDifferences(t *testing.T) {
	// First point's incidence is its own value (implicit zero predecessor).
	inc, warns := ToIncidence(cumulativeSeries(100, 150, 150, 230))
	assert.Empty(t, warns)
	assert.Equal(t, []float64{100, 50, 0, 80}, inc.Values())
	assert.False(t, inc.Cumulative)
}

func TestToIncidenceClampsCorrections(t *testing.T) {
	// A downward revision produces a negative diff: clamp and warn, don't fail.
	inc, warns := ToIncidence(cumulativeSeries(100, 95, 120))
	assert.Equal(t, []float64{100, 0, 25}, inc.Values())
	require.Len(t, warns, 1)
	assert.Equal(t, schema.NegativeCorrection, warns[0].Kind)
	assert.Equal(t, day(2), warns[0].Date)
}

func TestToIncidencePassthrough(t *testing.T) {
	s := incidenceSeries(1, 2, 3)
	out, warns := ToIncidence(s)
	assert.Same(t, s, out)
	assert.Empty(t, warns)
}

func TestCumulativeRoundTrip(t *testing.T) {
	// toIncidence(cumulativeOf(x)) == x for non-negative x without corrections.
	x := incidenceSeries(500, 600, 450, 300, 0, 120)
	roundTripped, warns := ToIncidence(CumulativeOf(x))
	assert.Empty(t, warns)
	assert.Equal(t, x.Values(), roundTripped.Values())
}
