package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/davemolk/sircast/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 10

	DefaultDateColumn = "date"

	DefaultCasesColumn  = "cases"
	DefaultDeathsColumn = "deaths"
	DefaultHospColumn   = "hospitalizations"
	DefaultInputColumn  = "value"
)

// DatasetConfig describes one input dataset: where it lives, which column
// carries the counts, and how those counts are to be read.
type DatasetConfig struct {
	Path        string
	ValueColumn string
	Kind        schema.SeriesKind
	Cumulative  bool
}

// Config holds the runtime configuration for the pipeline.
// This struct is the final, validated config.
type Config struct {
	Cases  DatasetConfig
	Deaths DatasetConfig
	Hosp   DatasetConfig
	Input  DatasetConfig // Single-series commands (incidence, prevalence, describe)

	DateColumn     string
	LocationColumn string
	GroupColumns   []string
	Aliases        map[string][]string // Role column -> accepted raw spellings (config file)
	DateLayouts    []string

	LocationFilter string // Empty keeps every location
	Population     float64
	Windows        schema.WindowConfig
	PeriodUnit     schema.PeriodUnit
	Window         int // Explicit window for the prevalence command

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Cases           string `mapstructure:"cases"`
	CasesCol        string `mapstructure:"cases-col"`
	CasesCumulative bool   `mapstructure:"cases-cumulative"`

	Deaths           string `mapstructure:"deaths"`
	DeathsCol        string `mapstructure:"deaths-col"`
	DeathsCumulative bool   `mapstructure:"deaths-cumulative"`

	Hosp           string `mapstructure:"hosp"`
	HospCol        string `mapstructure:"hosp-col"`
	HospCumulative bool   `mapstructure:"hosp-cumulative"`

	Input           string `mapstructure:"input"`
	InputCol        string `mapstructure:"input-col"`
	InputKind       string `mapstructure:"kind"`
	InputCumulative bool   `mapstructure:"cumulative"`

	DateCol     string `mapstructure:"date-col"`
	LocationCol string `mapstructure:"location-col"`
	GroupCols   string `mapstructure:"group-cols"`

	Location        string  `mapstructure:"location"`
	Population      float64 `mapstructure:"population"`
	InfectionWindow int     `mapstructure:"infection-window"`
	HospWindow      int     `mapstructure:"hosp-window"`
	DeathOffset     int     `mapstructure:"death-offset"`
	PeriodUnit      string  `mapstructure:"period-unit"`
	Window          int     `mapstructure:"window"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Config file only ---
	Aliases     map[string][]string `mapstructure:"aliases"`
	DateLayouts []string            `mapstructure:"date-layouts"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.GroupColumns != nil {
		clone.GroupColumns = slices.Clone(c.GroupColumns)
	}
	if c.DateLayouts != nil {
		clone.DateLayouts = slices.Clone(c.DateLayouts)
	}
	if c.Aliases != nil {
		clone.Aliases = make(map[string][]string, len(c.Aliases))
		for k, v := range c.Aliases {
			clone.Aliases[k] = slices.Clone(v)
		}
	}
	return &clone
}

// MappingFor builds the column mapping the normalizer needs for one dataset,
// combining the shared date/location/group declarations with the dataset's
// own value column and kind.
func (c *Config) MappingFor(ds DatasetConfig) schema.ColumnMapping {
	aliases := make(map[string][]string, len(c.Aliases))
	maps.Copy(aliases, c.Aliases)
	return schema.ColumnMapping{
		DateColumn:     c.DateColumn,
		LocationColumn: c.LocationColumn,
		ValueColumn:    ds.ValueColumn,
		GroupColumns:   slices.Clone(c.GroupColumns),
		Kind:           ds.Kind,
		Cumulative:     ds.Cumulative,
		Aliases:        aliases,
		DateLayouts:    slices.Clone(c.DateLayouts),
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDatasets(cfg, input); err != nil {
		return err
	}
	if err := processWindows(cfg, input); err != nil {
		return err
	}
	return validateStoreConfig(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LocationFilter = input.Location
	cfg.Aliases = input.Aliases
	cfg.DateLayouts = input.DateLayouts

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, json, csv, parquet", input.Output)
	}

	cfg.PeriodUnit = schema.PeriodUnit(strings.ToLower(input.PeriodUnit))
	if _, ok := schema.ValidPeriodUnits[cfg.PeriodUnit]; !ok {
		return fmt.Errorf("invalid period unit '%s'. must be day or week", input.PeriodUnit)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, input.Precision)
	}

	cfg.Population = input.Population
	if cfg.Population <= 0 {
		return fmt.Errorf("population must be positive, got %v", input.Population)
	}

	cfg.UseEmojis = parseYesNo(input.Emoji, true)
	cfg.UseColors = parseYesNo(input.Color, true)

	cfg.DateColumn = input.DateCol
	if cfg.DateColumn == "" {
		cfg.DateColumn = DefaultDateColumn
	}
	cfg.LocationColumn = input.LocationCol
	if input.GroupCols != "" {
		for _, g := range strings.Split(input.GroupCols, ",") {
			if g = strings.TrimSpace(g); g != "" {
				cfg.GroupColumns = append(cfg.GroupColumns, g)
			}
		}
	}
	return nil
}

// processDatasets builds the per-dataset configs and resolves series kinds.
func processDatasets(cfg *Config, input *ConfigRawInput) error {
	cfg.Cases = DatasetConfig{
		Path:        input.Cases,
		ValueColumn: orDefault(input.CasesCol, DefaultCasesColumn),
		Cumulative:  input.CasesCumulative,
		Kind:        pickKind(input.CasesCumulative, schema.CumulativeCases, schema.IncidenceCases),
	}
	cfg.Deaths = DatasetConfig{
		Path:        input.Deaths,
		ValueColumn: orDefault(input.DeathsCol, DefaultDeathsColumn),
		Cumulative:  input.DeathsCumulative,
		Kind:        pickKind(input.DeathsCumulative, schema.CumulativeDeaths, schema.IncidenceDeaths),
	}
	cfg.Hosp = DatasetConfig{
		Path:        input.Hosp,
		ValueColumn: orDefault(input.HospCol, DefaultHospColumn),
		Cumulative:  input.HospCumulative,
		Kind:        pickKind(input.HospCumulative, schema.CumulativeHosp, schema.IncidenceHosp),
	}

	kind := schema.SeriesKind(input.InputKind)
	if input.InputKind != "" {
		if _, ok := schema.ValidSeriesKinds[kind]; !ok {
			return fmt.Errorf("invalid series kind '%s'", input.InputKind)
		}
	} else {
		kind = pickKind(input.InputCumulative, schema.CumulativeCases, schema.IncidenceCases)
	}
	cfg.Input = DatasetConfig{
		Path:        input.Input,
		ValueColumn: orDefault(input.InputCol, DefaultInputColumn),
		Cumulative:  input.InputCumulative || strings.HasPrefix(string(kind), "cumulative"),
		Kind:        kind,
	}
	return nil
}

// processWindows validates the window configuration. Windows are expressed in
// the same period unit as the input series; weekly callers supply weekly
// window lengths themselves.
func processWindows(cfg *Config, input *ConfigRawInput) error {
	cfg.Windows = schema.WindowConfig{
		Infection:       input.InfectionWindow,
		Hospitalization: input.HospWindow,
		DeathOffset:     input.DeathOffset,
	}
	if cfg.Windows.Infection <= 0 {
		return fmt.Errorf("infection window must be positive, got %d", cfg.Windows.Infection)
	}
	if cfg.Windows.Hospitalization <= 0 {
		return fmt.Errorf("hospitalization window must be positive, got %d", cfg.Windows.Hospitalization)
	}
	if cfg.Windows.DeathOffset < 0 {
		return fmt.Errorf("death offset must be non-negative, got %d", cfg.Windows.DeathOffset)
	}

	cfg.Window = input.Window
	if cfg.Window == 0 {
		cfg.Window = cfg.Windows.Infection
	}
	if cfg.Window < 0 {
		return fmt.Errorf("window must be positive, got %d", cfg.Window)
	}
	return nil
}

// validateStoreConfig validates the run-store backend configuration.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "://") && !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must be a URL or contain 'host=' parameter")
		}
	}
	return nil
}

// parseYesNo interprets yes/no style flags with a fallback.
func parseYesNo(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true
	case "no", "n", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func pickKind(cumulative bool, cum, inc schema.SeriesKind) schema.SeriesKind {
	if cumulative {
		return cum
	}
	return inc
}
