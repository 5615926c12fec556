package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/readscore/internal/config"
	"github.com/nao1215/readscore/internal/model"
)

// unrecognizedInputMessage is printed when a metric token is not accepted.
const unrecognizedInputMessage = "Unrecognized input, try again!"

// errNoMetricSelected is returned when input ends before a metric is chosen.
var errNoMetricSelected = errors.New("no metric selected")

// defaultSelectorToken returns the metric used for path when none is given
// on the command line and no prompt can be shown.
// Priority: READSCORE_METRIC or --metric > config file > "all"
func defaultSelectorToken(cfg *config.Config, path string) string {
	if cfg.Metric != "" {
		return cfg.Metric
	}
	if metric := cfg.PreferencesFor(path).Metric; metric != "" {
		return metric
	}
	return config.DefaultMetric
}

// selectorChooser decides which metric to compute for one document.
type selectorChooser struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	maxAttempts int
}

// choose returns the selector for token.
//
// A valid token is used as-is. Without a token, an interactive session is
// prompted and a non-interactive one uses fallback. An invalid token is
// an error unless the session is interactive, in which case the user may
// retry until maxAttempts tokens in total were rejected.
func (c *selectorChooser) choose(token, fallback string) (model.Selector, error) {
	if token != "" {
		sel, err := model.ParseSelector(token)
		if err == nil {
			return sel, nil
		}
		if !c.interactive || c.maxAttempts <= 1 {
			return 0, err
		}
		fmt.Fprintln(c.out, unrecognizedInputMessage)
		return c.prompt(c.maxAttempts - 1)
	}

	if !c.interactive {
		sel, err := model.ParseSelector(fallback)
		if err != nil {
			return 0, fmt.Errorf("invalid default metric: %w", err)
		}
		return sel, nil
	}
	return c.prompt(c.maxAttempts)
}

// prompt asks for a metric up to attempts times.
func (c *selectorChooser) prompt(attempts int) (model.Selector, error) {
	scanner := bufio.NewScanner(c.in)
	question := fmt.Sprintf("Which metric? (%s): ", strings.Join(model.SelectorTokens(), ", "))

	for i := 0; i < attempts; i++ {
		fmt.Fprint(c.out, question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read metric: %w", err)
			}
			return 0, errNoMetricSelected
		}

		sel, err := model.ParseSelector(strings.TrimSpace(scanner.Text()))
		if err == nil {
			return sel, nil
		}
		fmt.Fprintln(c.out, unrecognizedInputMessage)
	}

	return 0, fmt.Errorf("%w: giving up after %d attempts", model.ErrUnrecognizedSelector, attempts)
}
