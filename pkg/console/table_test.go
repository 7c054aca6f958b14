package console

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	output := RenderTable(TableConfig{
		Title:   "Type Check Overview",
		Headers: []string{"File", "Errors", "Warnings"},
		Rows: [][]string{
			{"src/a.py", "2", "0"},
			{"src/b.py", "1", "3"},
		},
		ShowTotal: true,
		TotalRow:  []string{"TOTAL (5 files checked)", "3", "3"},
	})

	for _, want := range []string{"Type Check Overview", "File", "src/a.py", "src/b.py", "TOTAL (5 files checked)"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}

	// Total row column is the widest cell, so every row pads to its width.
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	var headerLine string
	for _, line := range lines {
		if strings.Contains(line, "File") {
			headerLine = line
			break
		}
	}
	if !strings.Contains(headerLine, "|") {
		t.Errorf("Expected column separators in header row, got %q", headerLine)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if output := RenderTable(TableConfig{}); output != "" {
		t.Errorf("Expected empty output for empty headers, got %q", output)
	}
}
