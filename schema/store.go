package schema

import "time"

// PipelineRunRecord represents a row from the sircast_pipeline_runs table.
type PipelineRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRows     int32
	ConfigParams  *string
}

// StoreStatus represents the status of the run store.
type StoreStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalRuns   int       `json:"total_runs"`
	LastRunID   int64     `json:"last_run_id"`
	LastRunTime time.Time `json:"last_run_time"`
	TotalRows   int       `json:"total_rows"`
}
