//go:build basic

// Package integration contains integration tests for sircast.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const casesCSV = `date,cases
2021-03-01,10
2021-03-02,12
2021-03-03,8
2021-03-04,15
2021-03-05,11
2021-03-06,9
`

const deathsCSV = `date,deaths
2021-03-01,1
2021-03-02,0
2021-03-03,2
2021-03-04,1
2021-03-05,0
2021-03-06,1
`

const cumulativeCSV = `date,value
2021-03-01,100
2021-03-02,112
2021-03-03,120
2021-03-04,135
2021-03-05,146
2021-03-06,155
`

// TestComposeTableOutput runs the full pipeline and checks the rendered table.
func TestComposeTableOutput(t *testing.T) {
	dir := t.TempDir()
	cases := writeDataset(t, dir, "cases.csv", casesCSV)
	deaths := writeDataset(t, dir, "deaths.csv", deathsCSV)

	output, err := runSircastCommand(t, dir,
		"compose",
		"--cases", cases,
		"--deaths", deaths,
		"--population", "10000",
		"--infection-window", "3",
		"--death-offset", "1",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "2021-03-06")
	for _, compartment := range []string{"S", "I", "R", "D"} {
		assert.Contains(t, output, compartment)
	}
	assert.Contains(t, output, "Composed 1 location(s)")
}

// TestComposeCSVExport writes a wide CSV file and checks its shape.
func TestComposeCSVExport(t *testing.T) {
	dir := t.TempDir()
	cases := writeDataset(t, dir, "cases.csv", casesCSV)
	deaths := writeDataset(t, dir, "deaths.csv", deathsCSV)
	outFile := filepath.Join(dir, "compartments.csv")

	_, err := runSircastCommand(t, dir,
		"compose",
		"--cases", cases,
		"--deaths", deaths,
		"--population", "10000",
		"--infection-window", "3",
		"--output", "csv",
		"--output-file", outFile,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "location,date,S,I,R,D", lines[0])
	// Recovered needs a full infection window of lookback, so the joined
	// table starts at 2021-03-04.
	assert.Len(t, lines, 4)
}

// TestIncidenceFromCumulative checks differencing of a cumulative series.
func TestIncidenceFromCumulative(t *testing.T) {
	dir := t.TempDir()
	input := writeDataset(t, dir, "cumulative.csv", cumulativeCSV)

	output, err := runSircastCommand(t, dir,
		"incidence",
		"--input", input,
		"--cumulative",
		"--output", "csv",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "location,series,date,value")
	// First difference of 100 -> 112
	assert.Contains(t, output, "2021-03-02,12")
}

// TestPrevalenceWindow checks the rolling sum over a trailing window.
func TestPrevalenceWindow(t *testing.T) {
	dir := t.TempDir()
	input := writeDataset(t, dir, "cases.csv", casesCSV)

	output, err := runSircastCommand(t, dir,
		"prevalence",
		"--input", input,
		"--input-col", "cases",
		"--window", "2",
		"--output", "csv",
	)
	require.NoError(t, err)

	// 10 + 12 over the first full window
	assert.Contains(t, output, "2021-03-02,22")
}

// TestDescribeDataset checks the column summary output.
func TestDescribeDataset(t *testing.T) {
	dir := t.TempDir()
	input := writeDataset(t, dir, "cases.csv", casesCSV)

	output, err := runSircastCommand(t, dir, "describe", "--input", input)
	require.NoError(t, err)

	assert.Contains(t, output, "date")
	assert.Contains(t, output, "cases")
}

// TestVersionCommand sanity-checks the diagnostic output.
func TestVersionCommand(t *testing.T) {
	output, err := runSircastCommand(t, t.TempDir(), "version")
	require.NoError(t, err)

	assert.Contains(t, output, "sircast CLI")
	assert.Contains(t, output, "Version:")
}

// TestComposeMissingCases verifies validation fires before any work happens.
func TestComposeMissingCases(t *testing.T) {
	output, err := runSircastCommand(t, t.TempDir(), "compose")
	require.Error(t, err)
	assert.Contains(t, output, "cases")
}
