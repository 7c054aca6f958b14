package typecheck

import "fmt"

// Results is the aggregate produced by one parse pass (or by Merge). It is a
// read-only snapshot: the parser owns the slices while a pass is active and
// hands them over when it finishes. All counts and filtered views are derived
// from Diagnostics on demand and never stored.
type Results struct {
	Diagnostics     []*Diagnostic
	StandaloneNotes []*Note
	FilesChecked    int
	ParseErrors     []ParseError
}

// Errors returns the error-level diagnostics in appearance order.
func (r *Results) Errors() []*Diagnostic {
	var errs []*Diagnostic
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			errs = append(errs, d)
		}
	}
	return errs
}

// Warnings returns the warning-level diagnostics in appearance order.
func (r *Results) Warnings() []*Diagnostic {
	var warns []*Diagnostic
	for _, d := range r.Diagnostics {
		if d.Level == LevelWarning {
			warns = append(warns, d)
		}
	}
	return warns
}

// ErrorCount returns the number of error-level diagnostics.
func (r *Results) ErrorCount() int {
	return len(r.Errors())
}

// WarningCount returns the number of warning-level diagnostics.
func (r *Results) WarningCount() int {
	return len(r.Warnings())
}

// FilesWithErrors returns the distinct files that have at least one
// error-level diagnostic, in first-seen order. Files whose only diagnostics
// are warnings do not appear.
func (r *Results) FilesWithErrors() []string {
	seen := make(map[string]struct{})
	var files []string
	for _, d := range r.Diagnostics {
		if d.Level != LevelError {
			continue
		}
		if _, ok := seen[d.Location.File]; ok {
			continue
		}
		seen[d.Location.File] = struct{}{}
		files = append(files, d.Location.File)
	}
	return files
}

// FormatSummary renders the trailing summary line in the checker's own
// wording, with singular/plural forms selected independently per count.
func (r *Results) FormatSummary() string {
	errorCount := r.ErrorCount()
	fileCount := len(r.FilesWithErrors())
	return fmt.Sprintf("Found %d error%s in %d file%s (checked %d source file%s)",
		errorCount, pluralSuffix(errorCount),
		fileCount, pluralSuffix(fileCount),
		r.FilesChecked, pluralSuffix(r.FilesChecked))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Merge combines independently parsed Results into one. Diagnostics,
// standalone notes, and parse errors concatenate in input order; files-checked
// counts sum. Nothing is de-duplicated: callers that check overlapping targets
// accept duplicate counting. Merging nothing yields an empty Results and
// merging a single element returns it unchanged.
func Merge(results []*Results) *Results {
	if len(results) == 0 {
		return &Results{}
	}
	if len(results) == 1 {
		return results[0]
	}

	merged := &Results{}
	for _, r := range results {
		merged.Diagnostics = append(merged.Diagnostics, r.Diagnostics...)
		merged.StandaloneNotes = append(merged.StandaloneNotes, r.StandaloneNotes...)
		merged.ParseErrors = append(merged.ParseErrors, r.ParseErrors...)
		merged.FilesChecked += r.FilesChecked
	}
	return merged
}
