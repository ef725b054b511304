// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCompose prints composed compartment tables using the configured output format.
func (ow *OutWriter) WriteCompose(result *schema.ComposeResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComposeResults(result, cfg, duration)
}

// WriteSeries prints derived series results using the configured output format.
func (ow *OutWriter) WriteSeries(results []*schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(results, cfg, duration)
}

// WriteDescribe prints a per-column dataset summary using the configured output format.
func (ow *OutWriter) WriteDescribe(raw *schema.RawTable, cfg *contract.Config) error {
	return PrintDescribeResults(raw, cfg)
}

// GetMaxLabelWidth calculates the maximum width for location labels in table
// output based on terminal width and the number of compartment columns.
func GetMaxLabelWidth(cfg *contract.Config, compartments int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the date column plus each value column with
	// borders and padding.
	baseWidth := 15 + compartments*12

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 50 {
		// Maximum label width to prevent overly long location names
		return 50
	}
	return available
}
