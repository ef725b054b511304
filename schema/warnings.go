package schema

import (
	"fmt"
	"time"
)

// Warning is a non-fatal data-quality finding attached to pipeline output.
// Numeric anomalies are surfaced this way rather than raised, since reporting
// data routinely contains revisions the caller should see, not lose.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Date    time.Time   `json:"date,omitempty"` // Zero when the warning is not tied to a date
	Message string      `json:"message"`
}

// String renders the warning for console display.
func (w Warning) String() string {
	if w.Date.IsZero() {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Date.Format(DateOnly), w.Message)
}

// NewWarning builds a dated warning with a formatted message.
func NewWarning(kind WarningKind, date time.Time, format string, args ...any) Warning {
	return Warning{Kind: kind, Date: date, Message: fmt.Sprintf(format, args...)}
}
