package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/readscore/internal/model"
)

// ruleWidth is the width of the section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
//
// Design decision: We write plain text by default and only apply lipgloss
// styles when color is enabled, because:
// 1. Plain output works in all terminals and when piped to files
// 2. The caller knows whether stdout is a terminal, the writer does not
// 3. Tests can assert on exact text without stripping escape codes
type SimpleWriter struct {
	baseWriter

	// color enables lipgloss styling.
	color bool

	// showText echoes the analyzed text before the scores.
	showText bool

	styles simpleStyles
}

// simpleStyles holds the lipgloss styles used when color is enabled.
type simpleStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	score lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables styled output.
func WithColor(color bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.color = color
	}
}

// WithShowText echoes the analyzed text in the report.
func WithShowText(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showText = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	r := lipgloss.NewRenderer(output)
	w.styles = simpleStyles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		label: r.NewStyle().Foreground(lipgloss.Color("240")),
		score: r.NewStyle().Foreground(lipgloss.Color("86")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}

	return w
}

// Write outputs the analysis in human-readable format.
func (w *SimpleWriter) Write(analysis *model.Analysis) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, analysis)
	w.writeStatistics(&sb, analysis)
	if w.showText && analysis.Text != "" {
		w.writeText(&sb, analysis)
	}
	w.writeScores(&sb, analysis)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// paint applies style when color is enabled.
func (w *SimpleWriter) paint(style lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return style.Render(s)
}

// writeSection writes a section title between separators.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.paint(w.styles.title, title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the report header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, analysis *model.Analysis) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.paint(w.styles.title, "                        READABILITY REPORT"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "%s %s\n", w.paint(w.styles.label, "Document:     "), analysis.Path)
	fmt.Fprintf(sb, "%s %s\n", w.paint(w.styles.label, "Analyzed:     "), analysis.DateAnalyzed.Format("2006-01-02 15:04:05 MST"))
	if analysis.Format != "" {
		fmt.Fprintf(sb, "%s %s\n", w.paint(w.styles.label, "Format:       "), analysis.Format)
	}
	fmt.Fprintf(sb, "%s %s\n", w.paint(w.styles.label, "Metric:       "), analysis.Selector)

	status := statusText(analysis)
	if analysis.Failed() {
		status = w.paint(w.styles.fail, status)
	}
	fmt.Fprintf(sb, "%s %s\n\n", w.paint(w.styles.label, "Status:       "), status)
}

// writeStatistics writes the text statistics section.
func (w *SimpleWriter) writeStatistics(sb *strings.Builder, analysis *model.Analysis) {
	if analysis.Failed() && analysis.Counts == (model.Counts{}) {
		return
	}

	w.writeSection(sb, "TEXT STATISTICS")

	c := analysis.Counts
	fmt.Fprintf(sb, "  Words:          %d\n", c.Words)
	fmt.Fprintf(sb, "  Sentences:      %d\n", c.Sentences)
	fmt.Fprintf(sb, "  Characters:     %d\n", c.Characters)
	fmt.Fprintf(sb, "  Syllables:      %d\n", c.Syllables)
	fmt.Fprintf(sb, "  Polysyllables:  %d\n", c.Polysyllables)
	sb.WriteString("\n")
}

// writeText echoes the analyzed text.
func (w *SimpleWriter) writeText(sb *strings.Builder, analysis *model.Analysis) {
	w.writeSection(sb, "TEXT")
	sb.WriteString(analysis.Text)
	if !strings.HasSuffix(analysis.Text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeScores writes one line per metric and the mean for "all".
func (w *SimpleWriter) writeScores(sb *strings.Builder, analysis *model.Analysis) {
	if len(analysis.Results) == 0 {
		return
	}

	w.writeSection(sb, "SCORES")

	for _, r := range analysis.Results {
		line := ScoreLine(r)
		if r.AgeDefined {
			line = w.paint(w.styles.score, line)
		} else {
			line = w.paint(w.styles.warn, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if showMean(analysis) {
		sb.WriteString("\n")
		if analysis.MeanDefined {
			sb.WriteString(w.paint(w.styles.score, MeanLine(analysis.MeanAge)))
		} else {
			sb.WriteString(w.paint(w.styles.warn, MeanUndefinedLine))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
