package report

import (
	"fmt"
	"io"

	"github.com/nao1215/readscore/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or a buffer in
// tests with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(analysis *model.Analysis) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because each Writer renders its own format
// from the analysis, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(analysis *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(analysis)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// ScoreLine renders the result line for one metric.
// Out-of-range scores keep the score and replace the age phrase.
func ScoreLine(r model.Result) string {
	if !r.AgeDefined {
		return fmt.Sprintf("%s: %.2f (score out of supported range).", r.Metric.Title(), r.Score)
	}
	return fmt.Sprintf("%s: %.2f (about %d year olds).", r.Metric.Title(), r.Score, r.Age)
}

// MeanLine renders the summary line printed for the "all" selector.
func MeanLine(mean float64) string {
	return fmt.Sprintf("This text should be understood in average by %.2f year olds.", mean)
}

// MeanUndefinedLine is printed for "all" when any age was out of range.
const MeanUndefinedLine = "The average reader age is undefined because a score is out of the supported range."

// statusText describes how the analysis ended.
func statusText(analysis *model.Analysis) string {
	switch {
	case analysis.Cancelled:
		return "Cancelled"
	case analysis.ErrorMessage != "":
		return "Error - " + analysis.ErrorMessage
	default:
		return "Complete"
	}
}

// showMean reports whether the mean line belongs in the report.
func showMean(analysis *model.Analysis) bool {
	return analysis.Selector == model.SelectAll && len(analysis.Results) > 0
}
