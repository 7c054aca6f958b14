package typecheck

import (
	"regexp"
	"strconv"
	"strings"
)

// Line grammars for mypy's textual output. Each matcher is independent and
// reports non-matches as nil rather than errors.
var (
	diagnosticPattern = regexp.MustCompile(
		`^(?P<file>[^:]+):(?P<line>\d+):(?:(?P<column>\d+):)?\s*` +
			`(?P<level>error|warning):\s*(?P<message>.*?)\s*` +
			`(?:\[(?P<error_code>[^\]]+)\])?$`)

	notePattern = regexp.MustCompile(
		`^(?P<file>[^:]+):(?P<line>\d+):(?:(?P<column>\d+):)?\s*` +
			`note:\s*(?P<message>.*)$`)

	summaryPattern = regexp.MustCompile(
		`^Found (\d+) errors? in (\d+) files? \(checked (\d+) source files?\)$`)
)

// Patterns overrides the default line grammars, for checker dialects whose
// output differs from stock mypy. Custom diagnostic and note patterns must
// populate the named capture groups file, line, column, level, message and
// error_code (column and error_code may be omitted from the pattern). A nil
// field falls back to the built-in grammar.
type Patterns struct {
	Diagnostic *regexp.Regexp
	Note       *regexp.Regexp
	Summary    *regexp.Regexp
}

// MatchResult is the typed extraction from a diagnostic or note line.
// Column is 0 when the line carried no column segment. ErrorCode is empty
// when the line carried no bracketed code.
type MatchResult struct {
	File      string
	Line      int
	Column    int
	Level     Level
	Message   string
	ErrorCode string
}

// SummaryMatch is the typed extraction from a summary line. ErrorsReported
// and FilesReported are the checker's own advisory counts; the diagnostic
// list remains the authoritative source for both.
type SummaryMatch struct {
	ErrorsReported int
	FilesReported  int
	FilesChecked   int
}

// TryMatchDiagnostic tests one trimmed line against the diagnostic grammar.
// Returns nil when the line is not a diagnostic.
func TryMatchDiagnostic(line string) *MatchResult {
	return matchMessageLine(diagnosticPattern, line, "")
}

// TryMatchNote tests one trimmed line against the note grammar. Returns nil
// when the line is not a note.
func TryMatchNote(line string) *MatchResult {
	return matchMessageLine(notePattern, line, LevelNote)
}

// TryMatchSummary tests one trimmed line against the summary grammar.
// Returns nil when the line is not a summary.
func TryMatchSummary(line string) *SummaryMatch {
	m := summaryPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	errs, err1 := strconv.Atoi(m[1])
	files, err2 := strconv.Atoi(m[2])
	checked, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	return &SummaryMatch{ErrorsReported: errs, FilesReported: files, FilesChecked: checked}
}

// matchMessageLine extracts the shared field set from a diagnostic or note
// line. fixedLevel forces the level (notes have no level capture group);
// when empty the level comes from the pattern, normalized to lowercase.
func matchMessageLine(re *regexp.Regexp, line string, fixedLevel Level) *MatchResult {
	groups := matchNamedGroups(re, line)
	if groups == nil {
		return nil
	}

	lineNum, err := strconv.Atoi(groups["line"])
	if err != nil {
		return nil
	}

	column := 0
	if col := groups["column"]; col != "" {
		column, err = strconv.Atoi(col)
		if err != nil {
			return nil
		}
	}

	level := fixedLevel
	if level == "" {
		level = Level(strings.ToLower(groups["level"]))
	}

	return &MatchResult{
		File:      groups["file"],
		Line:      lineNum,
		Column:    column,
		Level:     level,
		Message:   groups["message"],
		ErrorCode: groups["error_code"],
	}
}

// matchNamedGroups runs re against line and returns its named captures, or
// nil on no match. Groups the pattern does not define simply stay absent, so
// custom patterns without a column or error_code group still extract cleanly.
func matchNamedGroups(re *regexp.Regexp, line string) map[string]string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		groups[name] = m[i]
	}
	return groups
}

// matchCustomSummary tests a custom summary pattern. The last all-digit
// capture group, when one exists, holds the files-checked total; a match
// without numeric captures still consumes the line.
func matchCustomSummary(re *regexp.Regexp, line string) (filesChecked int, hasCount, matched bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false, false
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		if n, err := strconv.Atoi(g); err == nil {
			filesChecked, hasCount = n, true
		}
	}
	return filesChecked, hasCount, true
}
