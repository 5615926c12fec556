package model

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedSelector is returned when a metric token is not one of
// "ARI", "FK", "SMOG", "CL" or "all". Tokens are case-sensitive.
var ErrUnrecognizedSelector = errors.New("unrecognized metric selector")

// Metric identifies one readability formula.
//
// Design decision: We use iota-based constants rather than string constants
// so that the set of metrics is closed and switch statements over it can be
// checked for exhaustiveness. The String() method returns the selector token.
type Metric int

const (
	// MetricARI is the Automated Readability Index.
	MetricARI Metric = iota

	// MetricFK is the Flesch-Kincaid grade level.
	MetricFK

	// MetricSMOG is the Simple Measure of Gobbledygook.
	MetricSMOG

	// MetricCL is the Coleman-Liau index.
	MetricCL
)

// AllMetrics lists every metric in the fixed order used by the "all" selector.
var AllMetrics = []Metric{MetricARI, MetricFK, MetricSMOG, MetricCL}

// String returns the selector token for the metric.
func (m Metric) String() string {
	switch m {
	case MetricARI:
		return "ARI"
	case MetricFK:
		return "FK"
	case MetricSMOG:
		return "SMOG"
	case MetricCL:
		return "CL"
	default:
		return "UNKNOWN"
	}
}

// Title returns the human-readable name of the metric.
func (m Metric) Title() string {
	switch m {
	case MetricARI:
		return "Automated Readability Index"
	case MetricFK:
		return "Flesch–Kincaid readability tests"
	case MetricSMOG:
		return "Simple Measure of Gobbledygook"
	case MetricCL:
		return "Coleman–Liau index"
	default:
		return "Unknown metric"
	}
}

// IsValid reports whether m is one of the four known metrics.
func (m Metric) IsValid() bool {
	return m >= MetricARI && m <= MetricCL
}

// MarshalText implements encoding.TextMarshaler so metrics serialize as tokens.
func (m Metric) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid metric %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	sel, err := ParseSelector(string(text))
	if err != nil {
		return err
	}
	metric, ok := sel.Metric()
	if !ok {
		return fmt.Errorf("%w: %q is not a single metric", ErrUnrecognizedSelector, text)
	}
	*m = metric
	return nil
}

// Selector is the closed set of dispatch choices: one metric, or all four.
type Selector int

const (
	// SelectARI selects only the Automated Readability Index.
	SelectARI Selector = iota

	// SelectFK selects only Flesch-Kincaid.
	SelectFK

	// SelectSMOG selects only SMOG.
	SelectSMOG

	// SelectCL selects only Coleman-Liau.
	SelectCL

	// SelectAll selects all four metrics and the mean reader age.
	SelectAll
)

// selectorTokens maps the accepted input tokens to selectors.
var selectorTokens = map[string]Selector{
	"ARI":  SelectARI,
	"FK":   SelectFK,
	"SMOG": SelectSMOG,
	"CL":   SelectCL,
	"all":  SelectAll,
}

// ParseSelector converts a user token into a Selector.
// Matching is case-sensitive; unknown tokens return ErrUnrecognizedSelector.
func ParseSelector(token string) (Selector, error) {
	sel, ok := selectorTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedSelector, token)
	}
	return sel, nil
}

// SelectorTokens returns the accepted tokens in display order.
func SelectorTokens() []string {
	return []string{"ARI", "FK", "SMOG", "CL", "all"}
}

// String returns the token that parses back into s.
func (s Selector) String() string {
	switch s {
	case SelectAll:
		return "all"
	default:
		if m, ok := s.Metric(); ok {
			return m.String()
		}
		return "UNKNOWN"
	}
}

// Metric returns the single metric for s. The second result is false for
// SelectAll and for invalid selectors.
func (s Selector) Metric() (Metric, bool) {
	switch s {
	case SelectARI:
		return MetricARI, true
	case SelectFK:
		return MetricFK, true
	case SelectSMOG:
		return MetricSMOG, true
	case SelectCL:
		return MetricCL, true
	default:
		return 0, false
	}
}

// Metrics returns the metrics dispatched by s, in evaluation order.
func (s Selector) Metrics() []Metric {
	if s == SelectAll {
		out := make([]Metric, len(AllMetrics))
		copy(out, AllMetrics)
		return out
	}
	if m, ok := s.Metric(); ok {
		return []Metric{m}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	if s < SelectARI || s > SelectAll {
		return nil, fmt.Errorf("invalid selector %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selector) UnmarshalText(text []byte) error {
	sel, err := ParseSelector(string(text))
	if err != nil {
		return err
	}
	*s = sel
	return nil
}
