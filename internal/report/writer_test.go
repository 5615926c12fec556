package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/readscore/internal/model"
)

// createTestAnalysis creates an analysis with sample data for testing.
func createTestAnalysis() *model.Analysis {
	a := model.NewAnalysis("/docs/story.txt", model.SelectAll)
	a.DateAnalyzed = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	a.Format = model.FormatText
	a.Text = "The children played outside until dinner."
	a.Counts = model.Counts{Sentences: 3, Words: 19, Characters: 105, Syllables: 30, Polysyllables: 2}
	a.ApplySummary(model.Summary{
		Selector: model.SelectAll,
		Results: []model.Result{
			{Metric: model.MetricARI, Score: 7.7736, Age: 14, AgeDefined: true},
			{Metric: model.MetricFK, Score: 5.5095, Age: 12, AgeDefined: true},
			{Metric: model.MetricSMOG, Score: 7.7932, Age: 14, AgeDefined: true},
			{Metric: model.MetricCL, Score: 12.0236, Age: 18, AgeDefined: true},
		},
		MeanAge:     14.5,
		MeanDefined: true,
	})
	return a
}

// TestScoreLine tests the per-metric result line.
func TestScoreLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result model.Result
		want   string
	}{
		{
			name:   "defined age",
			result: model.Result{Metric: model.MetricARI, Score: 7.7736, Age: 14, AgeDefined: true},
			want:   "Automated Readability Index: 7.77 (about 14 year olds).",
		},
		{
			name:   "out of range",
			result: model.Result{Metric: model.MetricARI, Score: -0.86},
			want:   "Automated Readability Index: -0.86 (score out of supported range).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ScoreLine(tt.result); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestMeanLine tests the summary line.
func TestMeanLine(t *testing.T) {
	t.Parallel()

	want := "This text should be understood in average by 14.50 year olds."
	if got := MeanLine(14.5); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes statistics and scores", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestAnalysis())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, want := range []string{
			"READABILITY REPORT",
			"/docs/story.txt",
			"Words:          19",
			"Polysyllables:  2",
			"Automated Readability Index: 7.77 (about 14 year olds).",
			"Coleman–Liau index: 12.02 (about 18 year olds).",
			"This text should be understood in average by 14.50 year olds.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "\x1b[") {
			t.Error("expected no escape codes without color")
		}
		if strings.Contains(output, "The children played") {
			t.Error("expected text to be hidden by default")
		}
	})

	t.Run("echoes text when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowText(true)).Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "The children played outside until dinner.") {
			t.Error("expected output to contain the text")
		}
	})

	t.Run("single metric has no mean line", func(t *testing.T) {
		t.Parallel()

		a := createTestAnalysis()
		a.ApplySummary(model.Summary{
			Selector: model.SelectFK,
			Results:  []model.Result{{Metric: model.MetricFK, Score: 5.5095, Age: 12, AgeDefined: true}},
		})

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "Flesch–Kincaid readability tests: 5.51 (about 12 year olds).") {
			t.Error("expected FK line")
		}
		if strings.Contains(output, "in average by") {
			t.Error("expected no mean line for a single metric")
		}
	})

	t.Run("undefined mean", func(t *testing.T) {
		t.Parallel()

		a := createTestAnalysis()
		a.Results[0] = model.Result{Metric: model.MetricARI, Score: -0.86}
		a.MeanDefined = false
		a.MeanAge = 0

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "score out of supported range") {
			t.Error("expected out of range marker")
		}
		if !strings.Contains(output, MeanUndefinedLine) {
			t.Error("expected undefined mean line")
		}
	})

	t.Run("failed analysis shows status", func(t *testing.T) {
		t.Parallel()

		a := model.NewAnalysis("/docs/missing.txt", model.SelectAll)
		a.SetError(errors.New("load: input could not be read"))

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "Error - load: input could not be read") {
			t.Error("expected error status")
		}
		if strings.Contains(output, "TEXT STATISTICS") || strings.Contains(output, "SCORES") {
			t.Error("expected no statistics or scores for a failed analysis")
		}
	})
}

// TestMarkdownWriter tests the markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables chart and alert", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Readability Report",
			"## Text Statistics",
			"## Scores",
			"pie",
			"Polysyllabic",
			"Automated Readability Index",
			"7.77",
			"[!NOTE]",
			"This text should be understood in average by 14.50 year olds.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("warns about out of range scores", func(t *testing.T) {
		t.Parallel()

		a := createTestAnalysis()
		a.Results[0] = model.Result{Metric: model.MetricARI, Score: -0.86}
		a.MeanDefined = false

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "[!WARNING]") {
			t.Error("expected warning alert")
		}
		if !strings.Contains(output, "out of range") {
			t.Error("expected out of range age cell")
		}
	})

	t.Run("includes text when requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, WithMarkdownText(true)).Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "The children played outside until dinner.") {
			t.Error("expected text in details section")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.Analysis
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Path != "/docs/story.txt" {
			t.Errorf("expected path /docs/story.txt, got %s", parsed.Path)
		}
		if len(parsed.Results) != 4 || parsed.Results[3].Metric != model.MetricCL {
			t.Errorf("unexpected results: %+v", parsed.Results)
		}
		if strings.Contains(buf.String(), "The children played") {
			t.Error("expected text to be excluded")
		}
	})

	t.Run("pretty prints with indentation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"path\"") {
			t.Error("expected indented output")
		}
	})

	t.Run("wraps with version and text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithVersion("1.2.3"), WithJSONText(true))
		if _, err := w.Write(createTestAnalysis()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed JSONReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Version != "1.2.3" {
			t.Errorf("expected version 1.2.3, got %s", parsed.Version)
		}
		if parsed.Analysis == nil || parsed.Analysis.MeanAge != 14.5 {
			t.Errorf("expected wrapped analysis with mean 14.5, got %+v", parsed.Analysis)
		}
		if parsed.Text != "The children played outside until dinner." {
			t.Errorf("expected text in wrapper, got %q", parsed.Text)
		}
	})
}

// failingWriter always fails.
type failingWriter struct{}

func (failingWriter) Write(*model.Analysis) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestAnalysis())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&buf))
		if _, err := mw.Write(createTestAnalysis()); err == nil {
			t.Error("expected error")
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}
