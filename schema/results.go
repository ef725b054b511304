package schema

// LocationResult bundles one composed table with the warnings accumulated
// across every stage that touched its series. Warnings travel with results
// rather than through a side channel so callers can display them next to
// the data they qualify.
type LocationResult struct {
	Table    *CompartmentTable `json:"table"`
	Warnings []Warning         `json:"warnings"`
}

// ComposeResult holds the per-location output of a full pipeline run.
// Locations are independent: no series ever mixes two locations.
type ComposeResult struct {
	Results []*LocationResult `json:"results"`
}

// SeriesResult is the output of the single-series operations: a derived
// series plus its accumulated warnings. Exactly one of Incidence and
// Prevalence is set, depending on the operation.
type SeriesResult struct {
	Incidence  *IncidenceSeries  `json:"incidence,omitempty"`
	Prevalence *PrevalenceSeries `json:"prevalence,omitempty"`
	Warnings   []Warning         `json:"warnings"`
}
