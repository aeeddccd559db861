package logger

import (
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// out is where every level writes. It starts as color.Output (stdout with
// Windows ANSI support) and is redirected to a log file while the wizard owns the terminal.
var out io.Writer = color.Output

// Colorized printers for the different log levels. They behave like fmt.Printf
// but write to the current output with the level's color.

// Info logs informational messages in green color.
var Info = printer(color.FgGreen)

// Warn logs warning messages in bright magenta color.
var Warn = printer(color.FgHiMagenta)

// Error logs error messages in red color.
var Error = printer(color.FgRed)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag.
var Debug = func(format string, a ...any) {}

// printer builds a printf-style function bound to a color attribute.
// The writer is looked up on each call so Init can redirect output after the fact.
func printer(attr color.Attribute) func(format string, a ...any) {
	c := color.New(attr)
	return func(format string, a ...any) {
		_, _ = c.Fprintf(out, format, a...)
	}
}

// terminalNoColor remembers what fatih/color detected for the terminal.
var terminalNoColor = color.NoColor

// Init initializes the logger package.
// Parameters:
//   - enableDebug: turn debug messages on or off.
//   - w: destination for all levels; nil selects the colored terminal output.
//
// When w is not the terminal, color escapes are disabled so log files stay readable.
func Init(enableDebug bool, w io.Writer) {
	if w != nil {
		out = w
		color.NoColor = true
	} else {
		out = color.Output
		color.NoColor = terminalNoColor
	}
	if enableDebug {
		Debug = printer(color.FgCyan)
	} else {
		Debug = func(format string, a ...any) {}
	}
}
