package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/typecheckhq/mycheck/pkg/console"
	"github.com/typecheckhq/mycheck/pkg/typecheck"
)

// JSONLFormatter renders error-level diagnostics as line-delimited JSON
// records. Warnings and notes do not appear in the stream; the format
// serves downstream tooling that gates on errors.
type JSONLFormatter struct {
	Out io.Writer
}

// NewJSONLFormatter returns a JSONL formatter whose default sink is stdout.
func NewJSONLFormatter() *JSONLFormatter {
	return &JSONLFormatter{Out: os.Stdout}
}

// errorRecord is the wire shape of one error diagnostic. Column is null when
// the checker reported no column for the location.
type errorRecord struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    *int   `json:"column"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// metadataRecord leads the stream when writing to a named destination so
// consumers can verify completeness without counting lines.
type metadataRecord struct {
	Type       string `json:"type"`
	ErrorCount int    `json:"error_count"`
}

// Format writes one record per error diagnostic. With an outputPath the
// stream gains a leading metadata record and goes to that file in a single
// open-write-close pass; a failed file write falls back to bare records on
// the default sink with a printed warning instead of propagating.
func (f *JSONLFormatter) Format(results *typecheck.Results, outputPath string) error {
	records, err := encodeErrorRecords(results)
	if err != nil {
		return err
	}

	out := f.Out
	if out == nil {
		out = os.Stdout
	}

	if outputPath == "" {
		_, err := out.Write(records)
		return err
	}

	var buf bytes.Buffer
	metadata, err := json.Marshal(metadataRecord{Type: "metadata", ErrorCount: results.ErrorCount()})
	if err != nil {
		return fmt.Errorf("failed to encode metadata record: %w", err)
	}
	buf.Write(metadata)
	buf.WriteByte('\n')
	buf.Write(records)

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("failed to write %s, falling back to stdout: %v", outputPath, err)))
		_, err := out.Write(records)
		return err
	}
	return nil
}

func encodeErrorRecords(results *typecheck.Results) ([]byte, error) {
	var buf bytes.Buffer
	for _, diagnostic := range results.Errors() {
		record := errorRecord{
			File:      diagnostic.Location.File,
			Line:      diagnostic.Location.Line,
			Level:     string(diagnostic.Level),
			Message:   diagnostic.Message,
			ErrorCode: diagnostic.ErrorCode,
		}
		if diagnostic.Location.Column > 0 {
			column := diagnostic.Location.Column
			record.Column = &column
		}
		line, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode error record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
