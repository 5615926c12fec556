package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/readscore/internal/model"
)

// Step is one stage of analyzing a document. Steps run in order and share
// the *model.Analysis; each one reads what earlier steps filled in.
//
// Design decision: Steps are an interface rather than plain functions so a
// step can hold its own options (size cap, input mode, logger) and tests can
// swap any stage for a stub.
type Step interface {
	// Do runs the step. A returned error ends the analysis.
	Do(ctx context.Context, analysis *model.Analysis) error

	// Name identifies the step in logs and in Analysis.PerformedSteps.
	Name() string
}

// Pipeline runs its steps over one analysis. Scoring text that failed to
// load yields nothing, so the first failing step ends the run.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New returns an empty Pipeline. Use Add to append steps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Add appends steps in execution order.
func (p *Pipeline) Add(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames lists the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

// Execute runs every step on analysis until one fails or ctx is done.
//
// The failure, or the cancellation, is recorded on analysis and returned.
// Steps that finished are listed in analysis.PerformedSteps.
func (p *Pipeline) Execute(ctx context.Context, analysis *model.Analysis) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("analysis cancelled",
				"path", analysis.Path,
				"before", step.Name(),
				"reason", err,
			)
			analysis.Cancelled = true
			analysis.SetError(err)
			return err
		}

		if err := p.run(ctx, step, analysis); err != nil {
			analysis.SetError(err)
			return err
		}
		analysis.PerformedSteps = append(analysis.PerformedSteps, step.Name())
	}
	return nil
}

// run executes a single step and logs how it went.
func (p *Pipeline) run(ctx context.Context, step Step, analysis *model.Analysis) error {
	start := time.Now()
	err := step.Do(ctx, analysis)

	attrs := []any{
		"step", step.Name(),
		"path", analysis.Path,
		"elapsed", time.Since(start),
	}
	if err != nil {
		p.logger.Debug("step failed", append(attrs, "error", err)...)
		return err
	}
	p.logger.Debug("step done", attrs...)
	return nil
}
