package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// TextFormatter renders results in the checker's own textual style: one line
// per diagnostic, indented note lines underneath, and a trailing summary
// line. The rendering round-trips through the diagnostic line grammar.
type TextFormatter struct {
	Out io.Writer
}

// NewTextFormatter returns a text formatter writing to stdout.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{Out: os.Stdout}
}

// Format writes the text rendering. Text output always goes to the
// configured writer; outputPath applies to record-oriented formats only and
// is ignored here.
func (f *TextFormatter) Format(results *typecheck.Results, outputPath string) error {
	out := f.Out
	if out == nil {
		out = os.Stdout
	}

	for _, diagnostic := range results.Diagnostics {
		if _, err := fmt.Fprintln(out, DiagnosticLine(diagnostic)); err != nil {
			return fmt.Errorf("failed to write diagnostic: %w", err)
		}
		for _, note := range diagnostic.Notes {
			if _, err := fmt.Fprintf(out, "  note: %s\n", note); err != nil {
				return fmt.Errorf("failed to write note: %w", err)
			}
		}
	}

	if _, err := fmt.Fprintln(out, results.FormatSummary()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// DiagnosticLine renders one diagnostic in the source line grammar:
// <file>:<line>[:<column>]: <level>: <message>[ [<code>]]. The column
// segment is omitted when the location has none and the code segment is
// omitted when the error code is empty.
func DiagnosticLine(d *typecheck.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", d.Location.File, d.Location.Line)
	if d.Location.Column > 0 {
		fmt.Fprintf(&b, ":%d", d.Location.Column)
	}
	fmt.Fprintf(&b, ": %s: %s", d.Level, d.Message)
	if d.ErrorCode != "" {
		fmt.Fprintf(&b, " [%s]", d.ErrorCode)
	}
	return b.String()
}
