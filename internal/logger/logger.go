package logger

import (
	"github.com/fatih/color" // Colored console output for the different log levels
)

// Colorized printf-style functions for the log levels. All output goes to
// stderr (color.Error) so the child binary's stdout stays clean for piped
// consumers such as `gcop commit --json`.

// Info logs informational messages in green, e.g. download progress notices.
var Info = stderrPrintf(color.FgGreen)

// Warn logs warning messages in bright magenta.
var Warn = stderrPrintf(color.FgHiMagenta)

// Error logs error messages in red.
var Error = stderrPrintf(color.FgRed)

// Debug logs debug messages in cyan when enabled via Init, otherwise it is
// a no-op. The default is a no-op so packages may log before Init runs.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging. The wrapper takes no flags of its
// own (they all belong to the child binary), so callers wire this to the
// GCOP_WRAPPER_DEBUG environment variable.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = stderrPrintf(color.FgCyan)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// stderrPrintf builds a printf-style function writing colored output to
// stderr in the given color.
func stderrPrintf(attr color.Attribute) func(format string, a ...any) {
	f := color.New(attr).FprintfFunc()
	return func(format string, a ...any) {
		f(color.Error, format, a...)
	}
}
