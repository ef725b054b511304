package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/internal/outwriter"
	"github.com/davemolk/sircast/schema"
)

// GetComposeResults runs the full incidence-to-compartment pipeline and
// returns the composed tables without printing them. This is the pure entry
// point shared by the CLI, the MCP server, and tests.
func GetComposeResults(cfg *contract.Config, loader contract.DatasetLoader) (*schema.ComposeResult, error) {
	if cfg.Cases.Path == "" {
		return nil, errors.New("cases dataset path is required")
	}
	cases, err := loadCanonical(cfg, loader, cfg.Cases)
	if err != nil {
		return nil, err
	}

	var deaths, hosp *schema.CanonicalTable
	if cfg.Deaths.Path != "" {
		if deaths, err = loadCanonical(cfg, loader, cfg.Deaths); err != nil {
			return nil, err
		}
	}
	if cfg.Hosp.Path != "" {
		if hosp, err = loadCanonical(cfg, loader, cfg.Hosp); err != nil {
			return nil, err
		}
	}

	locations := cases.Locations()
	output := &schema.ComposeResult{}
	for _, location := range locations {
		result, err := composeLocation(cfg, location, cases, deaths, hosp)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", location, err)
		}
		output.Results = append(output.Results, result)
	}
	return output, nil
}

// composeLocation builds one location's compartment table. Each location gets
// its own series set, never a shared table mutated in place.
func composeLocation(cfg *contract.Config, location string, cases, deaths, hosp *schema.CanonicalTable) (*schema.LocationResult, error) {
	var warnings []schema.Warning
	series := make(map[string]*schema.PrevalenceSeries)

	caseSeries, err := ExtractSeries(cases, location, cfg.Cases.Kind)
	if err != nil {
		return nil, err
	}
	caseInc, warns := ToIncidence(caseSeries)
	warnings = append(warnings, warns...)

	infectious, warns, err := RollingPrevalence(caseInc, schema.CompartmentI, cfg.Windows.Infection)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, warns...)
	series[schema.CompartmentI] = infectious

	var deceased *schema.PrevalenceSeries
	if deaths != nil {
		deathSeries, err := ExtractSeries(deaths, location, cfg.Deaths.Kind)
		if err != nil {
			return nil, err
		}
		deceased = CumulativePrevalence(deathSeries, schema.CompartmentD)
		series[schema.CompartmentD] = deceased

		recovered, warns, err := RecoveredEstimate(caseInc, cfg.Windows.Infection)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, warns...)
		series[schema.CompartmentR] = recovered
	}

	if hosp != nil {
		hospSeries, err := ExtractSeries(hosp, location, cfg.Hosp.Kind)
		if err != nil {
			return nil, err
		}
		hospInc, warns := ToIncidence(hospSeries)
		warnings = append(warnings, warns...)

		hospitalized, warns, err := HospitalizedPrevalence(hospInc, deceased, cfg.Windows.Hospitalization, cfg.Windows.DeathOffset)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, warns...)
		series[schema.CompartmentH] = hospitalized
	}

	table, warns := Compose(location, series, cfg.Population)
	warnings = append(warnings, warns...)
	return &schema.LocationResult{Table: table, Warnings: warnings}, nil
}

// loadCanonical reads one dataset, normalizes it, collapses declared group
// columns, and applies the location filter.
func loadCanonical(cfg *contract.Config, loader contract.DatasetLoader, ds contract.DatasetConfig) (*schema.CanonicalTable, error) {
	raw, err := loader.Load(ds.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ds.Path, err)
	}

	mapping := cfg.MappingFor(ds)
	table, err := Normalize(raw, mapping, cfg.PeriodUnit)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", ds.Path, err)
	}

	if len(cfg.GroupColumns) > 0 {
		table = AggregateByGroup(table, nil)
	}
	if cfg.LocationColumn != "" && cfg.LocationFilter != "" {
		table = FilterLocation(table, cfg.LocationFilter)
	}
	return table, nil
}

// ExecuteCompose runs the pipeline, prints the composed tables, and records
// the run in the configured store. Main entry point for the 'compose' command.
func ExecuteCompose(cfg *contract.Config, loader contract.DatasetLoader, store contract.RunStore) error {
	start := time.Now()
	output, err := GetComposeResults(cfg, loader)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if store != nil {
		if err := recordRun(store, cfg, output, start, duration); err != nil {
			contract.LogWarn("Could not record run", err)
		}
	}

	return outwriter.NewOutWriter().WriteCompose(output, cfg, duration)
}

// recordRun persists run metadata and every composed row.
func recordRun(store contract.RunStore, cfg *contract.Config, output *schema.ComposeResult, start time.Time, duration time.Duration) error {
	params := map[string]any{
		"population":  cfg.Population,
		"windows":     cfg.Windows,
		"period_unit": cfg.PeriodUnit,
		"location":    cfg.LocationFilter,
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		return err
	}
	totalRows := 0
	for _, r := range output.Results {
		if err := store.RecordCompartments(runID, r.Table); err != nil {
			return err
		}
		totalRows += len(r.Table.Rows)
	}
	return store.FinishRun(runID, duration, totalRows)
}

// GetIncidenceResults converts a cumulative input series to incidence for
// each location present after filtering.
func GetIncidenceResults(cfg *contract.Config, loader contract.DatasetLoader) ([]*schema.SeriesResult, error) {
	if cfg.Input.Path == "" {
		return nil, errors.New("input dataset path is required")
	}
	table, err := loadCanonical(cfg, loader, cfg.Input)
	if err != nil {
		return nil, err
	}
	var results []*schema.SeriesResult
	for _, location := range table.Locations() {
		s, err := ExtractSeries(table, location, cfg.Input.Kind)
		if err != nil {
			return nil, err
		}
		inc, warns := ToIncidence(s)
		results = append(results, &schema.SeriesResult{Incidence: inc, Warnings: warns})
	}
	return results, nil
}

// ExecuteIncidence derives incidence from a cumulative series and prints it.
func ExecuteIncidence(cfg *contract.Config, loader contract.DatasetLoader) error {
	start := time.Now()
	results, err := GetIncidenceResults(cfg, loader)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(results, cfg, time.Since(start))
}

// GetPrevalenceResults computes the rolling-window prevalence of one series
// per location.
func GetPrevalenceResults(cfg *contract.Config, loader contract.DatasetLoader) ([]*schema.SeriesResult, error) {
	if cfg.Input.Path == "" {
		return nil, errors.New("input dataset path is required")
	}
	table, err := loadCanonical(cfg, loader, cfg.Input)
	if err != nil {
		return nil, err
	}
	var results []*schema.SeriesResult
	for _, location := range table.Locations() {
		s, err := ExtractSeries(table, location, cfg.Input.Kind)
		if err != nil {
			return nil, err
		}
		inc, warns := ToIncidence(s)
		prev, more, err := RollingPrevalence(inc, schema.CompartmentI, cfg.Window)
		if err != nil {
			return nil, err
		}
		results = append(results, &schema.SeriesResult{Prevalence: prev, Warnings: append(warns, more...)})
	}
	return results, nil
}

// ExecutePrevalence computes rolling prevalence for one series and prints it.
func ExecutePrevalence(cfg *contract.Config, loader contract.DatasetLoader) error {
	start := time.Now()
	results, err := GetPrevalenceResults(cfg, loader)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(results, cfg, time.Since(start))
}

// ExecuteDescribe prints a per-column summary of a raw dataset, the same
// briefing an analyst (or agent) needs before declaring a column mapping.
func ExecuteDescribe(cfg *contract.Config, loader contract.DatasetLoader) error {
	if cfg.Input.Path == "" {
		return errors.New("input dataset path is required")
	}
	raw, err := loader.Load(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Input.Path, err)
	}
	return outwriter.NewOutWriter().WriteDescribe(raw, cfg)
}
