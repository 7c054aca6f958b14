package typecheck

import (
	"testing"
)

func TestNewDiagnosticRejectsInvalidLevel(t *testing.T) {
	loc := Location{File: "a.py", Line: 1}

	if _, err := NewDiagnostic(loc, LevelNote, "msg", ""); err == nil {
		t.Error("Expected error for note level diagnostic")
	}
	if _, err := NewDiagnostic(loc, Level("fatal"), "msg", ""); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := NewDiagnostic(loc, LevelError, "msg", "arg-type"); err != nil {
		t.Errorf("Expected error level accepted, got %v", err)
	}
	if _, err := NewDiagnostic(loc, LevelWarning, "msg", ""); err != nil {
		t.Errorf("Expected warning level accepted, got %v", err)
	}
}

func TestNewNoteRejectsNonNoteLevel(t *testing.T) {
	loc := Location{File: "a.py", Line: 1}

	if _, err := NewNote(loc, LevelError, "msg"); err == nil {
		t.Error("Expected error for error level note")
	}
	note, err := NewNote(loc, LevelNote, "msg")
	if err != nil {
		t.Fatalf("Expected note level accepted, got %v", err)
	}
	if note.Message != "msg" {
		t.Errorf("Expected message preserved, got %q", note.Message)
	}
}

func mustDiagnostic(t *testing.T, file string, line int, level Level, message string) *Diagnostic {
	t.Helper()
	d, err := NewDiagnostic(Location{File: file, Line: line}, level, message, "")
	if err != nil {
		t.Fatalf("NewDiagnostic failed: %v", err)
	}
	return d
}

func TestResultsDerivedViews(t *testing.T) {
	results := &Results{
		Diagnostics: []*Diagnostic{
			mustDiagnostic(t, "a.py", 1, LevelError, "e1"),
			mustDiagnostic(t, "b.py", 2, LevelWarning, "w1"),
			mustDiagnostic(t, "a.py", 3, LevelError, "e2"),
			mustDiagnostic(t, "c.py", 4, LevelError, "e3"),
		},
	}

	if got := results.ErrorCount(); got != 3 {
		t.Errorf("Expected 3 errors, got %d", got)
	}
	if got := results.WarningCount(); got != 1 {
		t.Errorf("Expected 1 warning, got %d", got)
	}
	for _, d := range results.Errors() {
		if d.Level != LevelError {
			t.Errorf("Errors() returned level %s", d.Level)
		}
	}
	for _, d := range results.Warnings() {
		if d.Level != LevelWarning {
			t.Errorf("Warnings() returned level %s", d.Level)
		}
	}
}

func TestFilesWithErrorsDeduplicatesAndSkipsWarnings(t *testing.T) {
	results := &Results{
		Diagnostics: []*Diagnostic{
			mustDiagnostic(t, "a.py", 1, LevelError, "e1"),
			mustDiagnostic(t, "warn.py", 2, LevelWarning, "w1"),
			mustDiagnostic(t, "b.py", 3, LevelError, "e2"),
			mustDiagnostic(t, "a.py", 4, LevelError, "e3"),
		},
	}

	files := results.FilesWithErrors()
	if len(files) != 2 {
		t.Fatalf("Expected 2 files with errors, got %d: %v", len(files), files)
	}
	if files[0] != "a.py" || files[1] != "b.py" {
		t.Errorf("Expected first-seen order [a.py b.py], got %v", files)
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		results *Results
		want    string
	}{
		{
			name: "all singular",
			results: &Results{
				Diagnostics:  []*Diagnostic{mustDiagnostic(t, "a.py", 1, LevelError, "e")},
				FilesChecked: 1,
			},
			want: "Found 1 error in 1 file (checked 1 source file)",
		},
		{
			name: "all plural",
			results: &Results{
				Diagnostics: []*Diagnostic{
					mustDiagnostic(t, "a.py", 1, LevelError, "e1"),
					mustDiagnostic(t, "a.py", 2, LevelError, "e2"),
					mustDiagnostic(t, "b.py", 3, LevelError, "e3"),
				},
				FilesChecked: 10,
			},
			want: "Found 3 errors in 2 files (checked 10 source files)",
		},
		{
			name:    "zero errors plural",
			results: &Results{FilesChecked: 5},
			want:    "Found 0 errors in 0 files (checked 5 source files)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.results.FormatSummary(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge(nil)
	if merged == nil {
		t.Fatal("Expected non-nil merged results")
	}
	if len(merged.Diagnostics) != 0 || merged.FilesChecked != 0 {
		t.Errorf("Expected empty merged results, got %+v", merged)
	}
}

func TestMergeSingleIsIdentity(t *testing.T) {
	single := &Results{FilesChecked: 3}
	if got := Merge([]*Results{single}); got != single {
		t.Error("Expected single merge to return the input unchanged")
	}
}

func TestMergeConcatenatesAndSums(t *testing.T) {
	first := &Results{
		Diagnostics:  []*Diagnostic{mustDiagnostic(t, "a.py", 1, LevelError, "e1")},
		FilesChecked: 2,
		ParseErrors:  []ParseError{{LineNumber: 1, LineContent: "junk", Reason: "No pattern matched"}},
	}
	second := &Results{
		Diagnostics: []*Diagnostic{
			mustDiagnostic(t, "a.py", 9, LevelError, "dup file"),
			mustDiagnostic(t, "b.py", 2, LevelWarning, "w1"),
		},
		StandaloneNotes: []*Note{{Location: Location{File: "b.py", Line: 1}, Level: LevelNote, Message: "hint"}},
		FilesChecked:    3,
	}

	merged := Merge([]*Results{first, second})

	if len(merged.Diagnostics) != 3 {
		t.Fatalf("Expected 3 diagnostics, got %d", len(merged.Diagnostics))
	}
	// No deduplication: both a.py diagnostics survive in input order.
	if merged.Diagnostics[0].Message != "e1" || merged.Diagnostics[1].Message != "dup file" {
		t.Errorf("Expected concatenation in input order, got %q then %q",
			merged.Diagnostics[0].Message, merged.Diagnostics[1].Message)
	}
	if merged.FilesChecked != 5 {
		t.Errorf("Expected files checked summed to 5, got %d", merged.FilesChecked)
	}
	if len(merged.StandaloneNotes) != 1 {
		t.Errorf("Expected 1 standalone note, got %d", len(merged.StandaloneNotes))
	}
	if len(merged.ParseErrors) != 1 {
		t.Errorf("Expected 1 parse error, got %d", len(merged.ParseErrors))
	}
}
