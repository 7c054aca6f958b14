package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

func TestTextFormatterOutput(t *testing.T) {
	results := typecheck.NewParser(typecheck.Config{}).ParseOutput(
		"a.py:10:5: error: Incompatible return value type [return-value]\n" +
			"a.py:10:5: note: Expected \"int\"\n" +
			"b.py:3: warning: unused ignore\n" +
			"Found 1 error in 1 file (checked 2 source files)")

	var buf bytes.Buffer
	formatter := &TextFormatter{Out: &buf}
	if err := formatter.Format(results, ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := "a.py:10:5: error: Incompatible return value type [return-value]\n" +
		"  note: Expected \"int\"\n" +
		"b.py:3: warning: unused ignore\n" +
		"Found 1 error in 1 file (checked 2 source files)\n"
	if buf.String() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, buf.String())
	}
}

func TestTextFormatterEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TextFormatter{Out: &buf}
	if err := formatter.Format(&typecheck.Results{FilesChecked: 4}, ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if buf.String() != "Found 0 errors in 0 files (checked 4 source files)\n" {
		t.Errorf("Expected summary only, got %q", buf.String())
	}
}

func TestTextFormatterIgnoresOutputPath(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TextFormatter{Out: &buf}
	if err := formatter.Format(&typecheck.Results{}, "/nonexistent/dir/out.txt"); err != nil {
		t.Fatalf("Expected outputPath to be ignored, got %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected output on the configured writer")
	}
}

func TestDiagnosticLineRoundTripsThroughParser(t *testing.T) {
	lines := []string{
		"a.py:10:5: error: Incompatible return value type [return-value]",
		`a.py:10: error: Argument 1 has incompatible type "str"; expected "int" [arg-type]`,
		`src/app.py:3: error: Name "x" is not defined`,
		`b.py:7:1: warning: unused "type: ignore" comment`,
	}

	for _, line := range lines {
		match := typecheck.TryMatchDiagnostic(line)
		if match == nil {
			t.Fatalf("Expected diagnostic match for %q", line)
		}
		d, err := typecheck.NewDiagnostic(
			typecheck.Location{File: match.File, Line: match.Line, Column: match.Column},
			match.Level, match.Message, match.ErrorCode)
		if err != nil {
			t.Fatalf("NewDiagnostic failed for %q: %v", line, err)
		}
		if got := DiagnosticLine(d); got != strings.TrimSpace(line) {
			t.Errorf("Round trip mismatch:\n  in:  %q\n  out: %q", line, got)
		}
	}
}

func TestForName(t *testing.T) {
	if _, ok := ForName("text"); !ok {
		t.Error("Expected text formatter to be registered")
	}
	if _, ok := ForName("jsonl"); !ok {
		t.Error("Expected jsonl formatter to be registered")
	}
	if _, ok := ForName("xml"); ok {
		t.Error("Expected unknown format to be rejected")
	}
}
