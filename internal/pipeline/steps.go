package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/readscore/internal/input"
	"github.com/nao1215/readscore/internal/model"
	"github.com/nao1215/readscore/internal/readability"
)

// LoadStep reads the document at analysis.Path and stores its text.
//
// Design decision: Loading is a separate step because:
// 1. Input errors must stop the analysis before any tokenization
// 2. The size cap and format detection are configured independently
// 3. Tests can inject text directly and skip the file system
type LoadStep struct {
	// maxSize caps the document size in bytes.
	maxSize int64

	// mode is the default input interpretation.
	mode input.Mode

	// modeFor optionally overrides mode per document path.
	modeFor func(path string) input.Mode

	// logger for structured logging.
	logger *slog.Logger
}

// LoadStepOption configures a LoadStep.
type LoadStepOption func(*LoadStep)

// WithLoadMaxSize sets the maximum document size.
func WithLoadMaxSize(size int64) LoadStepOption {
	return func(s *LoadStep) {
		s.maxSize = size
	}
}

// WithLoadMode sets how documents are interpreted.
func WithLoadMode(mode input.Mode) LoadStepOption {
	return func(s *LoadStep) {
		s.mode = mode
	}
}

// WithLoadModeResolver sets a per-path override for the input mode.
// Returning the empty Mode keeps the step's default.
func WithLoadModeResolver(resolve func(path string) input.Mode) LoadStepOption {
	return func(s *LoadStep) {
		s.modeFor = resolve
	}
}

// WithLoadLogger sets a custom logger for the load step.
func WithLoadLogger(logger *slog.Logger) LoadStepOption {
	return func(s *LoadStep) {
		s.logger = logger
	}
}

// NewLoadStep creates a new document loading step.
func NewLoadStep(opts ...LoadStepOption) *LoadStep {
	s := &LoadStep{
		maxSize: input.DefaultMaxSize,
		mode:    input.ModeAuto,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(ctx context.Context, analysis *model.Analysis) error {
	mode := s.mode
	if s.modeFor != nil {
		if m := s.modeFor(analysis.Path); m != "" {
			mode = m
		}
	}

	loader := input.NewLoader(
		input.WithMaxSize(s.maxSize),
		input.WithMode(mode),
		input.WithLoaderLogger(s.logger),
	)
	src, err := loader.Load(ctx, analysis.Path)
	if err != nil {
		return err
	}

	analysis.Text = src.Text
	analysis.Format = src.Format
	analysis.Digest = src.Digest

	s.logger.Debug("document text",
		"path", analysis.Path,
		"text", src.Text,
	)
	return nil
}

// AnalyzeStep tokenizes analysis.Text and scores it with analysis.Selector.
//
// Scores outside the age table are not failures here: they are kept with
// an undefined age so the report can show "score out of supported range"
// for that metric. A document without words or sentences fails the step.
type AnalyzeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new scoring step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analyze step.
func (s *AnalyzeStep) Do(_ context.Context, analysis *model.Analysis) error {
	doc := readability.NewDocument(analysis.Text)
	analysis.Counts = doc.Counts()

	if !doc.Scorable() {
		s.logger.Debug("nothing to score",
			"path", analysis.Path,
			"words", analysis.Counts.Words,
			"sentences", analysis.Counts.Sentences,
		)
		return fmt.Errorf("%w: %s has %d words and %d sentences",
			readability.ErrDegenerateInput, analysis.Path, analysis.Counts.Words, analysis.Counts.Sentences)
	}

	summary, err := doc.Evaluate(analysis.Selector)
	if err != nil {
		if !errors.Is(err, readability.ErrScoreOutOfRange) {
			return fmt.Errorf("failed to score %s: %w", analysis.Path, err)
		}
		s.logger.Debug("score without age",
			"path", analysis.Path,
			"error", err,
		)
	}
	analysis.ApplySummary(summary)

	s.logger.Debug("document scored",
		"path", analysis.Path,
		"selector", analysis.Selector.String(),
		"words", analysis.Counts.Words,
		"sentences", analysis.Counts.Sentences,
	)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// MaxInputSize is the maximum document size in bytes.
	MaxInputSize int64

	// Mode is the default input interpretation.
	Mode input.Mode

	// ModeFor optionally overrides Mode per document path.
	ModeFor func(path string) input.Mode
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineMaxInputSize sets the maximum document size.
func WithPipelineMaxInputSize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxInputSize = size
	}
}

// WithPipelineMode sets the default input interpretation.
func WithPipelineMode(mode input.Mode) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Mode = mode
	}
}

// WithPipelineModeResolver sets a per-path input mode override.
func WithPipelineModeResolver(resolve func(path string) input.Mode) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ModeFor = resolve
	}
}

// DefaultPipeline creates a pipeline that loads a document and scores it.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts config options (WithPipelineMode, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxInputSize: input.DefaultMaxSize,
		Mode:         input.ModeAuto,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.Add(
		NewLoadStep(
			WithLoadMaxSize(cfg.MaxInputSize),
			WithLoadMode(cfg.Mode),
			WithLoadModeResolver(cfg.ModeFor),
			WithLoadLogger(p.logger),
		),
		NewAnalyzeStep(WithAnalyzeLogger(p.logger)),
	)
	return p
}
