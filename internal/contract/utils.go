package contract

import (
	"fmt"
	"os"

	"github.com/davemolk/sircast/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	CorrectionColor  = color.New(color.FgYellow)            // reporting corrections are routine caution
	WindowColor      = color.New(color.FgCyan)              // insufficient-window is informational
	CompartmentColor = color.New(color.FgRed, color.Bold)   // negative compartments signal real trouble
	HeaderColor      = color.New(color.FgWhite, color.Bold) // section headers in table output
)

// WarningLabel returns the display label for a warning kind, colored for
// console output when enabled.
func WarningLabel(kind schema.WarningKind, colored bool) string {
	text := string(kind)
	if !colored {
		return text
	}
	switch kind {
	case schema.NegativeCorrection:
		return CorrectionColor.Sprint(text)
	case schema.InsufficientWindow:
		return WindowColor.Sprint(text)
	case schema.NegativeCompartment:
		return CompartmentColor.Sprint(text)
	default:
		return text
	}
}

// TruncateLabel shortens a display label to at most maxWidth runes, keeping
// the tail since location names tend to differ at the end.
func TruncateLabel(s string, maxWidth int) string {
	runes := []rune(s)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[len(runes)-maxWidth:])
	}
	return "..." + string(runes[len(runes)-(maxWidth-3):])
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. Empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
