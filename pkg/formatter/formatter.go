package formatter

import (
	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// Formatter renders a Results aggregate to an output sink. Implementations
// consume the model and add no parsing logic of their own.
type Formatter interface {
	// Format writes the results. outputPath names a destination file for
	// formats that support one; empty means the default sink (stdout).
	// Destination write failures are recovered by falling back to the
	// default sink and never propagate as pipeline failures.
	Format(results *typecheck.Results, outputPath string) error
}

// ForName returns the formatter registered under the given name.
func ForName(name string) (Formatter, bool) {
	switch name {
	case "text":
		return NewTextFormatter(), true
	case "jsonl":
		return NewJSONLFormatter(), true
	default:
		return nil, false
	}
}
