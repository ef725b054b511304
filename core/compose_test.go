package core

import (
	"testing"

	"github.com/davemolk/sircast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prevalence(compartment string, start int, values ...float64) *schema.PrevalenceSeries {
	s := &schema.PrevalenceSeries{
		Location:    schema.DefaultLocation,
		Compartment: compartment,
		Unit:        schema.DayUnit,
	}
	for i, v := range values {
		s.Points = append(s.Points, schema.TimeSeriesPoint{Date: day(start + i), Value: v})
	}
	return s
}

func TestComposeSusceptibleIdentity(t *testing.T) {
	// Spec scenario: population 150e6, I=1000, R=2000, H=50, D=10.
	series := map[string]*schema.PrevalenceSeries{
		schema.CompartmentI: prevalence(schema.CompartmentI, 1, 1000),
		schema.CompartmentR: prevalence(schema.CompartmentR, 1, 2000+10), // raw R still counts the deceased
		schema.CompartmentH: prevalence(schema.CompartmentH, 1, 50),
		schema.CompartmentD: prevalence(schema.CompartmentD, 1, 10),
	}

	table, warns := Compose(schema.DefaultLocation, series, 150e6)
	assert.Empty(t, warns)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, 2000.0, row.Values[schema.CompartmentR]) // adjusted after the join
	assert.Equal(t, 149996940.0, row.Values[schema.CompartmentS])

	// S + I + R + H + D == population exactly, by construction.
	total := 0.0
	for _, v := range row.Values {
		total += v
	}
	assert.Equal(t, 150e6, total)
}

func TestComposeInnerJoin(t *testing.T) {
	// Only dates present in every series survive.
	series := map[string]*schema.PrevalenceSeries{
		schema.CompartmentI: prevalence(schema.CompartmentI, 1, 10, 20, 30), // days 1-3
		schema.CompartmentD: prevalence(schema.CompartmentD, 2, 1, 2, 3),    // days 2-4
	}

	table, _ := Compose(schema.DefaultLocation, series, 1000)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, day(2), table.Rows[0].Date)
	assert.Equal(t, day(3), table.Rows[1].Date)
}

func TestComposeColumnOrder(t *testing.T) {
	series := map[string]*schema.PrevalenceSeries{
		schema.CompartmentD: prevalence(schema.CompartmentD, 1, 1),
		schema.CompartmentI: prevalence(schema.CompartmentI, 1, 2),
		"V":                 prevalence("V", 1, 3), // extra compartment passes through
	}

	table, _ := Compose(schema.DefaultLocation, series, 1000)
	assert.Equal(t, []string{"S", "I", "D", "V"}, table.Compartments)
	assert.Equal(t, 3.0, table.Rows[0].Values["V"])
}

func TestComposeNegativeSusceptibleWarned(t *testing.T) {
	// Compartments exceeding the population indicate a bad population
	// constant or bad data; surface it, don't clamp.
	series := map[string]*schema.PrevalenceSeries{
		schema.CompartmentI: prevalence(schema.CompartmentI, 1, 5000),
	}

	table, warns := Compose(schema.DefaultLocation, series, 1000)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, -4000.0, table.Rows[0].Values[schema.CompartmentS])
	require.Len(t, warns, 1)
	assert.Equal(t, schema.NegativeCompartment, warns[0].Kind)
	assert.Equal(t, day(1), warns[0].Date)
}

func TestComposeEmptyJoin(t *testing.T) {
	series := map[string]*schema.PrevalenceSeries{
		schema.CompartmentI: prevalence(schema.CompartmentI, 1, 10),
		schema.CompartmentD: prevalence(schema.CompartmentD, 5, 1), // disjoint dates
	}

	table, warns := Compose(schema.DefaultLocation, series, 1000)
	assert.Empty(t, table.Rows)
	assert.Empty(t, warns)
}

func TestComposeRecoveredPlusDeceasedBound(t *testing.T) {
	// Composed R + D <= cumulative incidence at any aligned date, absent data
	// noise. The deceased leave the recovered count exactly once.
	cases := incidenceSeries(100, 100, 100, 100, 100, 100)
	deaths := CumulativePrevalence(incidenceSeries(1, 1, 1, 1, 1, 1), schema.CompartmentD)

	rec, _, err := RecoveredEstimate(cases, 2)
	require.NoError(t, err)

	table, warns := Compose(schema.DefaultLocation, map[string]*schema.PrevalenceSeries{
		schema.CompartmentR: rec,
		schema.CompartmentD: deaths,
	}, 10_000)
	assert.Empty(t, warns)

	cum := CumulativeOf(cases)
	for _, row := range table.Rows {
		var cumAt float64
		for _, cp := range cum.Points {
			if cp.Date.Equal(row.Date) {
				cumAt = cp.Value
			}
		}
		assert.LessOrEqual(t, row.Values[schema.CompartmentR]+row.Values[schema.CompartmentD], cumAt)
	}
}

func TestComposeNegativeRecoveredPreserved(t *testing.T) {
	// Deaths exceeding resolved cases is data noise: the joined adjustment
	// keeps the negative value and flags it, never clamps.
	rec, _, err := RecoveredEstimate(incidenceSeries(10, 10, 10), 1)
	require.NoError(t, err)
	deaths := prevalence(schema.CompartmentD, 1, 0, 50, 60)

	table, warns := Compose(schema.DefaultLocation, map[string]*schema.PrevalenceSeries{
		schema.CompartmentR: rec,
		schema.CompartmentD: deaths,
	}, 10_000)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 10.0-50.0, table.Rows[0].Values[schema.CompartmentR])
	assert.Equal(t, 20.0-60.0, table.Rows[1].Values[schema.CompartmentR])

	var kinds []schema.WarningKind
	for _, w := range warns {
		kinds = append(kinds, w.Kind)
	}
	assert.Contains(t, kinds, schema.NegativeCompartment)
}
