package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/readscore/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in the wrapper when non-empty.
	version string

	// includeText adds the analyzed text to the wrapper.
	includeText bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion wraps each analysis in a JSONReport carrying version.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// WithJSONText includes the analyzed text in the wrapper.
func WithJSONText(include bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.includeText = include
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis in JSON format.
func (w *JSONWriter) Write(analysis *model.Analysis) (int, error) {
	if w.version != "" || w.includeText {
		wrapped := NewJSONReport(analysis, w.version)
		if w.includeText {
			wrapped.Text = analysis.Text
		}
		return w.writeJSON(wrapped)
	}
	return w.writeJSON(analysis)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport is a wrapper for an analysis with additional metadata.
//
// Design decision: We wrap the analysis rather than modifying model.Analysis
// because this allows us to add output-specific fields without polluting
// the core data structure.
type JSONReport struct {
	// Version is the readscore version that generated this report.
	Version string `json:"version,omitempty"`

	// Analysis is the full analysis record.
	Analysis *model.Analysis `json:"analysis"`

	// Text is the analyzed text, present only when requested.
	Text string `json:"text,omitempty"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(analysis *model.Analysis, version string) *JSONReport {
	return &JSONReport{
		Version:  version,
		Analysis: analysis,
	}
}
