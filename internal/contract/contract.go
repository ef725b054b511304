// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/davemolk/sircast/schema"
)

// DatasetLoader loads raw tabular datasets into memory. The pipeline core
// never reads disk directly; this boundary keeps the stages pure and lets
// tests feed tables straight in.
type DatasetLoader interface {
	// Load reads the dataset at path into a raw table.
	Load(path string) (*schema.RawTable, error)
}

// RunStore records pipeline runs and their composed rows for later analysis.
// Implementations may be backed by SQLite, MySQL, PostgreSQL, or a no-op.
type RunStore interface {
	// BeginRun creates a run record and returns its unique ID.
	BeginRun(start time.Time, params map[string]any) (int64, error)

	// RecordCompartments persists every row of a composed table under the run.
	RecordCompartments(runID int64, table *schema.CompartmentTable) error

	// FinishRun closes out the run with its duration and row count.
	FinishRun(runID int64, duration time.Duration, totalRows int) error

	// Status returns status information about the store.
	Status() (schema.StoreStatus, error)

	// Runs retrieves all recorded runs, oldest first.
	Runs() ([]schema.PipelineRunRecord, error)

	// Close releases the underlying connection.
	Close() error
}

// StoreManager hands out the configured run store. Mockable for testing.
type StoreManager interface {
	GetRunStore() RunStore
}
