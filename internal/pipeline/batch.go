package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/readscore/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents analyzed at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// BatchProcessor handles concurrent analysis of multiple documents.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on one document
// 2. Every document gets its own Pipeline and Document, so no score state
// is shared between goroutines
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each document.
	pipelineFactory func() *Pipeline

	// selectorFor picks the metric dispatch for a document path.
	selectorFor func(path string) model.Selector

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithSelectorResolver picks the selector per document path.
func WithSelectorResolver(resolve func(path string) model.Selector) BatchOption {
	return func(b *BatchProcessor) {
		if resolve != nil {
			b.selectorFor = resolve
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each document to create a
// fresh pipeline instance. Documents are scored with model.SelectAll unless
// WithSelectorResolver says otherwise.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		selectorFor:     func(string) model.Selector { return model.SelectAll },
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatchWithCallback analyzes multiple documents concurrently and
// calls callback for each completed analysis, failed ones included.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
//
// The callback receives the analysis and the index of its path in the
// original slice. It is called from the goroutine that completed the
// analysis, so it must be safe for concurrent use. Documents that never
// started because of cancellation get no callback. The error return is
// non-nil only if the batch was cancelled.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	paths []string,
	callback func(analysis *model.Analysis, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total_documents", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	err := bp.run(ctx, paths, callback)

	bp.logger.Info("batch processing complete",
		"total_documents", len(paths),
		"elapsed", time.Since(startTime),
	)
	return err
}

func (bp *BatchProcessor) run(ctx context.Context, paths []string, done func(*model.Analysis, int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("analyzing document",
				"path", path,
				"index", i+1,
				"total", len(paths),
			)

			analysis := model.NewAnalysis(path, bp.selectorFor(path))
			if err := bp.pipelineFactory().Execute(ctx, analysis); err != nil {
				// The error is recorded in the analysis; other documents continue.
				bp.logger.Warn("analysis failed",
					"path", path,
					"error", err,
				)
			}

			done(analysis, i)
			return nil
		})
	}

	return g.Wait()
}
