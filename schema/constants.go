package schema

// Custom string types for type safety.
type (
	// SeriesKind identifies what a time series counts.
	SeriesKind string

	// PeriodUnit represents the reporting period of a series.
	PeriodUnit string

	// OutputMode represents the format of the output.
	OutputMode string

	// WarningKind classifies non-fatal data-quality findings.
	WarningKind string

	// DatabaseBackend represents the database backend for run storage.
	DatabaseBackend string
)

// All series kinds supported.
const (
	IncidenceCases   SeriesKind = "incidence_cases"
	IncidenceHosp    SeriesKind = "incidence_hosp"
	IncidenceDeaths  SeriesKind = "incidence_deaths"
	CumulativeCases  SeriesKind = "cumulative_cases"
	CumulativeHosp   SeriesKind = "cumulative_hosp"
	CumulativeDeaths SeriesKind = "cumulative_deaths"
)

// All period units supported.
const (
	DayUnit  PeriodUnit = "day" // default
	WeekUnit PeriodUnit = "week"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All warning kinds emitted by the pipeline.
const (
	NegativeCorrection  WarningKind = "negative_correction"  // Negative diff clamped during cumulative conversion
	InsufficientWindow  WarningKind = "insufficient_window"  // Window longer than the series
	NegativeCompartment WarningKind = "negative_compartment" // Derived compartment value went negative
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Canonical compartment names. The composer accepts any name; these are the
// ones the pipeline produces itself.
const (
	CompartmentS = "S"
	CompartmentI = "I"
	CompartmentR = "R"
	CompartmentH = "H"
	CompartmentD = "D"
)

// Default pipeline parameters for daily data. Callers supplying weekly series
// must pre-convert window lengths to weeks.
const (
	DefaultInfectionWindow = 14
	DefaultHospitalWindow  = 10
	DefaultDeathOffset     = 3

	DefaultPopulation = 150_000_000

	DefaultLocation = "United States"
)

// DefaultDateLayouts are tried in order when a column mapping declares none.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
}

// CompartmentOrder is the preferred column order for rendering composed
// tables. Compartments not listed here sort alphabetically after these.
var CompartmentOrder = []string{CompartmentS, CompartmentI, CompartmentR, CompartmentH, CompartmentD}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidPeriodUnits lists all valid period units.
var ValidPeriodUnits = map[PeriodUnit]struct{}{
	DayUnit:  {},
	WeekUnit: {},
}

// ValidSeriesKinds lists all valid series kinds.
var ValidSeriesKinds = map[SeriesKind]struct{}{
	IncidenceCases:   {},
	IncidenceHosp:    {},
	IncidenceDeaths:  {},
	CumulativeCases:  {},
	CumulativeHosp:   {},
	CumulativeDeaths: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
