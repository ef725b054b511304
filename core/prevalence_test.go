package core

import (
	"errors"
	"testing"

	"github.com/davemolk/sircast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingPrevalenceWindow(t *testing.T) {
	// Length n-w+1; prevalence[t] is the trailing w-period sum.
	s := incidenceSeries(1, 2, 3, 4, 5)
	prev, warns, err := RollingPrevalence(s, schema.CompartmentI, 3)
	require.NoError(t, err)
	assert.Empty(t, warns)

	require.Len(t, prev.Points, 3)
	assert.Equal(t, day(3), prev.Points[0].Date) // first two dates lack full history
	assert.Equal(t, []float64{6, 9, 12}, valuesOf(prev))
}

func TestRollingPrevalenceSpecScenario(t *testing.T) {
	// 20 days of incidence, window 14: defined from day 14, and the first
	// value is the sum of the first 14 incidences.
	values := []float64{500, 600, 450, 300, 280, 310, 295, 400, 380, 360, 340, 330, 320, 310, 290, 280, 270, 260, 250, 240}
	s := incidenceSeries(values...)

	prev, warns, err := RollingPrevalence(s, schema.CompartmentI, 14)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, prev.Points, 7) // 20 - 14 + 1

	sum := 0.0
	for _, v := range values[:14] {
		sum += v
	}
	assert.Equal(t, day(14), prev.Points[0].Date)
	assert.Equal(t, sum, prev.Points[0].Value)

	_, ok := prev.ValueAt(day(13))
	assert.False(t, ok, "day 13 lacks a full window and must be absent, not zero")
}

func TestRollingPrevalenceZeroSeries(t *testing.T) {
	prev, warns, err := RollingPrevalence(incidenceSeries(0, 0, 0, 0), schema.CompartmentI, 2)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, []float64{0, 0, 0}, valuesOf(prev))
}

func TestRollingPrevalenceWindowErrors(t *testing.T) {
	s := incidenceSeries(1, 2, 3)

	_, _, err := RollingPrevalence(s, schema.CompartmentI, 0)
	var windowErr *WindowError
	require.True(t, errors.As(err, &windowErr))

	// Over-long window degrades to an empty series plus a warning.
	prev, warns, err := RollingPrevalence(s, schema.CompartmentI, 10)
	require.NoError(t, err)
	assert.Empty(t, prev.Points)
	require.Len(t, warns, 1)
	assert.Equal(t, schema.InsufficientWindow, warns[0].Kind)
}

func TestCumulativePrevalence(t *testing.T) {
	t.Run("from incidence", func(t *testing.T) {
		prev := CumulativePrevalence(incidenceSeries(10, 5, 0, 7), schema.CompartmentD)
		assert.Equal(t, []float64{10, 15, 15, 22}, valuesOf(prev))
	})

	t.Run("cumulative input used as-is", func(t *testing.T) {
		prev := CumulativePrevalence(cumulativeSeries(1000, 1050, 1100), schema.CompartmentD)
		assert.Equal(t, []float64{1000, 1050, 1100}, valuesOf(prev))
	})
}

func TestRecoveredEstimate(t *testing.T) {
	// Raw recovered is the lagged running total only; the deceased are removed
	// later, once, when the composer joins in the D series.
	rec, warns, err := RecoveredEstimate(incidenceSeries(100, 50, 25, 10), 2)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, rec.Points, 2)
	assert.Equal(t, day(3), rec.Points[0].Date)
	assert.Equal(t, []float64{100, 150}, valuesOf(rec))
}

func TestRecoveredEstimateComposedWeekly(t *testing.T) {
	// Weekly scenario: cumulative deaths [1000,1050,1100], window 2 weeks:
	// composed recovered[week 3] = cumulative_cases[week 1] - deaths[week 3].
	cases := &schema.IncidenceSeries{
		Location: schema.DefaultLocation,
		Kind:     schema.IncidenceCases,
		Unit:     schema.WeekUnit,
		Points: []schema.TimeSeriesPoint{
			{Date: day(1), Value: 2000},
			{Date: day(8), Value: 2500},
			{Date: day(15), Value: 1800},
		},
	}
	deaths := &schema.PrevalenceSeries{
		Location:    schema.DefaultLocation,
		Compartment: schema.CompartmentD,
		Unit:        schema.WeekUnit,
		Points: []schema.TimeSeriesPoint{
			{Date: day(1), Value: 1000},
			{Date: day(8), Value: 1050},
			{Date: day(15), Value: 1100},
		},
	}

	rec, warns, err := RecoveredEstimate(cases, 2)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, rec.Points, 1)
	assert.Equal(t, day(15), rec.Points[0].Date)
	assert.Equal(t, 2000.0, rec.Points[0].Value)

	table, _ := Compose(schema.DefaultLocation, map[string]*schema.PrevalenceSeries{
		schema.CompartmentR: rec,
		schema.CompartmentD: deaths,
	}, 1_000_000)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2000.0-1100.0, table.Rows[0].Values[schema.CompartmentR])
}

func TestRecoveredEstimateZeroIncidence(t *testing.T) {
	rec, warns, err := RecoveredEstimate(incidenceSeries(0, 0, 0, 0), 2)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, []float64{0, 0}, valuesOf(rec))
}

func TestRecoveredEstimateDegenerateWindow(t *testing.T) {
	cases := incidenceSeries(1, 2)

	_, _, err := RecoveredEstimate(cases, -1)
	var windowErr *WindowError
	require.True(t, errors.As(err, &windowErr))

	rec, warns, err := RecoveredEstimate(cases, 5)
	require.NoError(t, err)
	assert.Empty(t, rec.Points)
	require.Len(t, warns, 1)
	assert.Equal(t, schema.InsufficientWindow, warns[0].Kind)
}

func TestHospitalizedPrevalence(t *testing.T) {
	hosp := incidenceSeries(10, 10, 10, 10, 10)

	t.Run("plain rolling without deaths", func(t *testing.T) {
		prev, warns, err := HospitalizedPrevalence(hosp, nil, 2, 3)
		require.NoError(t, err)
		assert.Empty(t, warns)
		assert.Equal(t, []float64{20, 20, 20, 20}, valuesOf(prev))
	})

	t.Run("recent deaths removed", func(t *testing.T) {
		deaths := &schema.PrevalenceSeries{
			Compartment: schema.CompartmentD,
			Points: []schema.TimeSeriesPoint{
				{Date: day(1), Value: 0},
				{Date: day(2), Value: 1},
				{Date: day(3), Value: 3},
				{Date: day(4), Value: 6},
				{Date: day(5), Value: 10},
			},
		}
		prev, warns, err := HospitalizedPrevalence(hosp, deaths, 2, 1)
		require.NoError(t, err)
		assert.Empty(t, warns)
		// Each value loses the deaths of the most recent period.
		assert.Equal(t, []float64{20 - 1, 20 - 2, 20 - 3, 20 - 4}, valuesOf(prev))
	})
}

func valuesOf(s *schema.PrevalenceSeries) []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}
