package typecheck

import "fmt"

// Level is the severity of a single checker message.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNote    Level = "note"
)

// Location identifies a position in a checked source file. Line and Column
// are 1-based; a zero Column means the checker did not report one. End
// positions are optional metadata and carry no relationship to the start.
type Location struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Diagnostic is an error- or warning-level finding tied to a source location.
// Notes holds the messages of note lines attached to this diagnostic, in the
// order they appeared in the checker output.
type Diagnostic struct {
	Location Location
	Level    Level
	Message  string
	// ErrorCode is the bracketed code from the source line, without brackets.
	// Empty when the line carried no code.
	ErrorCode string
	Notes     []string
}

// NewDiagnostic builds a Diagnostic, rejecting note-level input. A rejection
// here indicates a classifier bug, not malformed checker output: the line
// grammars only ever hand error or warning tokens to this constructor.
func NewDiagnostic(loc Location, level Level, message, errorCode string) (*Diagnostic, error) {
	if level != LevelError && level != LevelWarning {
		return nil, fmt.Errorf("diagnostic level must be %q or %q, got %q", LevelError, LevelWarning, level)
	}
	return &Diagnostic{
		Location:  loc,
		Level:     level,
		Message:   message,
		ErrorCode: errorCode,
	}, nil
}

// Note is an informational message at a source location. Notes are either
// attached to the diagnostic that precedes them in the output stream or kept
// standalone when no diagnostic has been seen yet.
type Note struct {
	Location Location
	Level    Level
	Message  string
}

// NewNote builds a Note, rejecting error- and warning-level input.
func NewNote(loc Location, level Level, message string) (*Note, error) {
	if level != LevelNote {
		return nil, fmt.Errorf("note level must be %q, got %q", LevelNote, level)
	}
	return &Note{Location: loc, Level: level, Message: message}, nil
}

// ParseError records an input line that matched none of the line grammars.
// LineNumber is 1-based over the full input, counting blank lines.
// LineContent is the raw line before any whitespace trimming.
type ParseError struct {
	LineNumber  int
	LineContent string
	Reason      string
}
