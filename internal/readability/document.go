package readability

import (
	"errors"
	"fmt"

	"github.com/nao1215/readscore/internal/model"
	"github.com/nao1215/readscore/internal/textstat"
)

// Document is one tokenized text ready for scoring.
// A Document is immutable after NewDocument and safe for concurrent reads.
type Document struct {
	counts model.Counts
}

// NewDocument tokenizes text and estimates its syllables.
func NewDocument(text string) *Document {
	tokens := textstat.Tokenize(text)
	return &Document{
		counts: model.Counts{
			Sentences:     len(tokens.Sentences),
			Words:         len(tokens.Words),
			Characters:    len(tokens.Characters),
			Syllables:     textstat.Estimate(tokens.Words, textstat.ModeSyllables),
			Polysyllables: textstat.Estimate(tokens.Words, textstat.ModePolysyllables),
		},
	}
}

// Counts returns the aggregate statistics.
func (d *Document) Counts() model.Counts {
	return d.counts
}

// Scorable reports whether the document has at least one word and one sentence.
func (d *Document) Scorable() bool {
	return checkCounts(d.counts) == nil
}

// Score evaluates one metric.
//
// When the score has no age, the returned Result still carries the score
// with AgeDefined false, and the error wraps ErrScoreOutOfRange.
func (d *Document) Score(m model.Metric) (model.Result, error) {
	score, err := Compute(m, d.counts)
	if err != nil {
		return model.Result{}, err
	}

	result := model.Result{Metric: m, Score: score}
	age, err := MapAge(score)
	if err != nil {
		return result, fmt.Errorf("%s: %w", m, err)
	}
	result.Age = age
	result.AgeDefined = true
	return result, nil
}

// ScoreAll evaluates ARI, FK, SMOG and CL in that order and averages their ages.
//
// The mean is sum/4 and is only defined when all four ages are. Out-of-range
// ages do not stop evaluation; they are joined into the returned error while
// the summary still holds every score. ErrDegenerateInput stops immediately.
//
// Design decision: The age total is a local accumulator, so calling ScoreAll
// repeatedly on one Document always yields the same mean.
func (d *Document) ScoreAll() (model.Summary, error) {
	metrics := model.SelectAll.Metrics()
	summary := model.Summary{
		Selector: model.SelectAll,
		Results:  make([]model.Result, 0, len(metrics)),
	}

	var (
		total   int
		defined = true
		errs    []error
	)
	for _, m := range metrics {
		result, err := d.Score(m)
		if err != nil {
			if !errors.Is(err, ErrScoreOutOfRange) {
				return model.Summary{}, err
			}
			errs = append(errs, err)
			defined = false
		}
		summary.Results = append(summary.Results, result)
		total += result.Age
	}

	if defined {
		summary.MeanAge = float64(total) / float64(len(metrics))
		summary.MeanDefined = true
	}
	return summary, errors.Join(errs...)
}

// Evaluate dispatches on a selector: one metric, or all four with a mean.
func (d *Document) Evaluate(sel model.Selector) (model.Summary, error) {
	if sel == model.SelectAll {
		return d.ScoreAll()
	}

	metrics := sel.Metrics()
	if len(metrics) != 1 {
		return model.Summary{}, fmt.Errorf("%w: %d", model.ErrUnrecognizedSelector, int(sel))
	}
	result, err := d.Score(metrics[0])
	if err != nil && !errors.Is(err, ErrScoreOutOfRange) {
		return model.Summary{}, err
	}
	return model.Summary{
		Selector: sel,
		Results:  []model.Result{result},
	}, err
}
