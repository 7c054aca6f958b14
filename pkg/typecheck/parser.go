package typecheck

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Config controls how the parser reads checker output.
type Config struct {
	// ShowColumnNumbers records whether the checker was run with column
	// numbers enabled. Parsing tolerates either form; this only informs
	// format detection round-trips.
	ShowColumnNumbers bool

	// ShowErrorEnd records whether the checker reports end positions.
	ShowErrorEnd bool

	// Debug emits one trace line per input line naming the parse outcome.
	// Tracing never changes the returned results.
	Debug bool

	// Patterns overrides the built-in line grammars.
	Patterns Patterns
}

// Parser consumes one full checker output blob line-by-line and accumulates
// a Results aggregate. State is instance-scoped: each parse call site must
// use its own Parser, which then makes concurrent parsing of independent
// outputs safe. The "current diagnostic" used for note attachment is held as
// an index into the diagnostics slice, not a live reference.
type Parser struct {
	config          Config
	diagnostics     []*Diagnostic
	standaloneNotes []*Note
	filesChecked    int
	current         int
	parseErrors     []ParseError
}

// NewParser returns a parser with empty accumulation state.
func NewParser(config Config) *Parser {
	return &Parser{config: config, current: -1}
}

// NewParserMinimalOutput returns a parser for checkers run without column
// numbers.
func NewParserMinimalOutput() *Parser {
	return NewParser(Config{ShowColumnNumbers: false})
}

// NewParserFullOutput returns a parser for checkers run with column numbers
// and end positions.
func NewParserFullOutput() *Parser {
	return NewParser(Config{ShowColumnNumbers: true, ShowErrorEnd: true})
}

// DetectFormat inspects a sample output blob and returns a Config matching
// the observed dialect.
func DetectFormat(sample string) Config {
	config := Config{}
	if columnProbePattern.MatchString(sample) {
		config.ShowColumnNumbers = true
	}
	return config
}

// columnProbePattern spots the file:line:column: prefix that mypy emits when
// run with --show-column-numbers.
var columnProbePattern = regexp.MustCompile(`\S+:\d+:\d+:\s*(error|warning)`)

// ParseOutput parses the full blob and returns the accumulated Results.
// Lines are 1-indexed over the entire input, blank lines included; blank
// lines are skipped without being recorded and without disturbing the
// current-diagnostic scope. Per non-blank line the outcomes are tried in
// fixed order: diagnostic, note, summary, then a ParseError for anything
// left over. Parsing never aborts on unrecognized input.
func (p *Parser) ParseOutput(output string) *Results {
	lines := strings.Split(output, "\n")

	for i, rawLine := range lines {
		lineNumber := i + 1
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if diagnostic, err := p.tryParseDiagnostic(line); err != nil {
			p.recordParseError(lineNumber, rawLine, err.Error())
		} else if diagnostic != nil {
			p.trace(lineNumber, "parsed as diagnostic")
			p.diagnostics = append(p.diagnostics, diagnostic)
			// A new diagnostic always opens a fresh note-attachment scope.
			p.current = len(p.diagnostics) - 1
		} else if note := p.tryParseNote(line); note != nil {
			p.trace(lineNumber, "parsed as note")
			if p.current >= 0 {
				p.diagnostics[p.current].Notes = append(p.diagnostics[p.current].Notes, note.Message)
			} else {
				p.standaloneNotes = append(p.standaloneNotes, note)
			}
		} else if p.tryParseSummary(line) {
			p.trace(lineNumber, "parsed as summary")
		} else {
			p.trace(lineNumber, "no pattern matched")
			p.recordParseError(lineNumber, rawLine, "No pattern matched")
		}
	}

	return &Results{
		Diagnostics:     p.diagnostics,
		StandaloneNotes: p.standaloneNotes,
		FilesChecked:    p.filesChecked,
		ParseErrors:     p.parseErrors,
	}
}

func (p *Parser) tryParseDiagnostic(line string) (*Diagnostic, error) {
	var match *MatchResult
	if p.config.Patterns.Diagnostic != nil {
		match = matchMessageLine(p.config.Patterns.Diagnostic, line, "")
	} else {
		match = TryMatchDiagnostic(line)
	}
	if match == nil {
		return nil, nil
	}

	location := Location{File: match.File, Line: match.Line, Column: match.Column}
	return NewDiagnostic(location, match.Level, match.Message, match.ErrorCode)
}

func (p *Parser) tryParseNote(line string) *Note {
	var match *MatchResult
	if p.config.Patterns.Note != nil {
		match = matchMessageLine(p.config.Patterns.Note, line, LevelNote)
	} else {
		match = TryMatchNote(line)
	}
	if match == nil {
		return nil
	}

	location := Location{File: match.File, Line: match.Line, Column: match.Column}
	note, err := NewNote(location, match.Level, match.Message)
	if err != nil {
		return nil
	}
	return note
}

// tryParseSummary updates files-checked from a summary line. A later summary
// line in the same input overwrites an earlier one.
func (p *Parser) tryParseSummary(line string) bool {
	if p.config.Patterns.Summary != nil {
		filesChecked, hasCount, matched := matchCustomSummary(p.config.Patterns.Summary, line)
		if !matched {
			return false
		}
		if hasCount {
			p.filesChecked = filesChecked
		}
		return true
	}

	match := TryMatchSummary(line)
	if match == nil {
		return false
	}
	p.filesChecked = match.FilesChecked
	return true
}

func (p *Parser) recordParseError(lineNumber int, rawLine, reason string) {
	p.parseErrors = append(p.parseErrors, ParseError{
		LineNumber:  lineNumber,
		LineContent: rawLine,
		Reason:      reason,
	})
}

func (p *Parser) trace(lineNumber int, outcome string) {
	if !p.config.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[trace] line %d: %s\n", lineNumber, outcome)
}
