package model

import (
	"time"

	"github.com/google/uuid"
)

// Input formats recorded on an Analysis.
const (
	// FormatText is plain text read as-is.
	FormatText = "text"

	// FormatHTML is an HTML document whose visible text was extracted.
	FormatHTML = "html"
)

// Analysis is the full record of one analyzed document.
// It carries the inputs, the statistics, the scores and any failure, and it
// is what report writers render and what the history database stores.
//
// Design decision: Like the scan report it replaces, we use one flat struct
// rather than nesting the summary, so serialization and the database schema
// stay simple.
type Analysis struct {
	// ID uniquely identifies this analysis run.
	ID string `json:"id"`

	// Path is the document location as given (or made absolute) by the caller.
	Path string `json:"path"`

	// Format is FormatText or FormatHTML.
	Format string `json:"format,omitempty"`

	// Digest is the hex SHA3-256 of the analyzed text.
	Digest string `json:"digest,omitempty"`

	// DateAnalyzed is when the analysis was started.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// Text is the decoded document text. Excluded from JSON due to size.
	Text string `json:"-"`

	// Selector is the metric dispatch requested for this document.
	Selector Selector `json:"selector"`

	// Counts are the aggregate text statistics.
	Counts Counts `json:"counts"`

	// Results holds one entry per evaluated metric.
	Results []Result `json:"results,omitempty"`

	// MeanAge is the mean reader age across all four metrics.
	MeanAge float64 `json:"mean_age,omitempty"`

	// MeanDefined is true when MeanAge is meaningful.
	MeanDefined bool `json:"mean_defined"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true if the analysis stopped on context cancellation.
	Cancelled bool `json:"cancelled,omitempty"`

	// Error contains any error that stopped the analysis.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewAnalysis creates an analysis record for the document at path.
func NewAnalysis(path string, selector Selector) *Analysis {
	return &Analysis{
		ID:           uuid.NewString(),
		Path:         path,
		DateAnalyzed: time.Now(),
		Selector:     selector,
	}
}

// ApplySummary copies the scores of a dispatch into the analysis.
func (a *Analysis) ApplySummary(s Summary) {
	a.Selector = s.Selector
	a.Results = s.Results
	a.MeanAge = s.MeanAge
	a.MeanDefined = s.MeanDefined
}

// Summary returns the scoring part of the analysis.
func (a *Analysis) Summary() Summary {
	return Summary{
		Selector:    a.Selector,
		Results:     a.Results,
		MeanAge:     a.MeanAge,
		MeanDefined: a.MeanDefined,
	}
}

// Failed reports whether the analysis stopped with an error.
func (a *Analysis) Failed() bool {
	return a.Error != nil || a.ErrorMessage != ""
}

// SetError records err as the reason the analysis stopped.
func (a *Analysis) SetError(err error) {
	a.Error = err
	if err != nil {
		a.ErrorMessage = err.Error()
	}
}
