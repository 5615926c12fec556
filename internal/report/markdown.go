package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/readscore/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// showText adds the analyzed text as a collapsible section.
	showText bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownText includes the analyzed text in the report.
func WithMarkdownText(show bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.showText = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the analysis in Markdown format.
func (w *MarkdownWriter) Write(analysis *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, analysis)
	w.writeStatistics(md, analysis)
	w.writeScores(md, analysis)
	if w.showText && analysis.Text != "" {
		md.Details("Analyzed text", analysis.Text)
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, analysis *model.Analysis) {
	md.H1("Readability Report")
	md.PlainText("")

	rows := [][]string{
		{"Document", "`" + analysis.Path + "`"},
		{"Analyzed", analysis.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
	}
	if analysis.Format != "" {
		rows = append(rows, []string{"Format", analysis.Format})
	}
	rows = append(rows,
		[]string{"Metric", analysis.Selector.String()},
		[]string{"Status", w.getStatusText(analysis)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// getStatusText returns the status text based on analysis state.
func (w *MarkdownWriter) getStatusText(analysis *model.Analysis) string {
	switch {
	case analysis.Cancelled:
		return "⚠️ Cancelled"
	case analysis.ErrorMessage != "":
		return "❌ Error - " + analysis.ErrorMessage
	default:
		return "✅ Complete"
	}
}

// writeStatistics writes the text statistics table and word composition chart.
func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, analysis *model.Analysis) {
	c := analysis.Counts
	if c == (model.Counts{}) {
		return
	}

	md.H2("Text Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Count"},
		Rows: [][]string{
			{"Words", strconv.Itoa(c.Words)},
			{"Sentences", strconv.Itoa(c.Sentences)},
			{"Characters", strconv.Itoa(c.Characters)},
			{"Syllables", strconv.Itoa(c.Syllables)},
			{"Polysyllables", strconv.Itoa(c.Polysyllables)},
		},
	})
	md.PlainText("")

	if c.Words > 0 {
		w.writePieChart(md, c)
	}
}

// writePieChart writes a mermaid pie chart of polysyllabic versus other words.
// Polysyllables counts words of three or more syllables, so it never exceeds Words.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, c model.Counts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Word Composition"),
		piechart.WithShowData(true),
	)

	other := c.Words - c.Polysyllables
	if c.Polysyllables > 0 {
		chart.LabelAndIntValue("Polysyllabic", uint64(c.Polysyllables)) //nolint:gosec // counts are non-negative
	}
	if other > 0 {
		chart.LabelAndIntValue("Other", uint64(other)) //nolint:gosec // counts are non-negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeScores writes the per-metric table and the summary alert.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, analysis *model.Analysis) {
	md.H2("Scores")
	md.PlainText("")

	if len(analysis.Results) == 0 {
		md.PlainText("No scores computed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(analysis.Results))
	outOfRange := 0
	for _, r := range analysis.Results {
		age := "out of range"
		if r.AgeDefined {
			age = strconv.Itoa(r.Age)
		} else {
			outOfRange++
		}
		rows = append(rows, []string{
			r.Metric.Title(),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			age,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Score", "Reader Age"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, analysis, outOfRange)
}

// writeAlert writes an alert that summarizes the reader age.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, analysis *model.Analysis, outOfRange int) {
	switch {
	case showMean(analysis) && analysis.MeanDefined:
		md.Note(MeanLine(analysis.MeanAge))
	case outOfRange > 0:
		md.Warningf("%d score(s) fall outside the supported reader age range.", outOfRange)
	case len(analysis.Results) == 1:
		md.Tip(ScoreLine(analysis.Results[0]))
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [readscore](https://github.com/nao1215/readscore)*")
}
