package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/readscore/internal/config"
	"github.com/nao1215/readscore/internal/model"
	"github.com/nao1215/readscore/internal/pipeline"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Score many documents concurrently",
		Long: `Batch scores several documents at once and prints one report per document
as each finishes.

The metric comes from --metric, then READSCORE_METRIC, then the
configuration file (per-path preferences apply), and "all" otherwise.
Batch mode never prompts.

Examples:
  # Score every chapter with all metrics
  readscore batch chapters/*.txt

  # Flesch–Kincaid only, eight documents at a time
  readscore batch --metric FK --batch 8 docs/*.html

  # Collect Markdown reports into one file
  readscore batch --markdown -o reports/all.md *.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().StringP("metric", "M", "",
		"Metric for every document: ARI, FK, SMOG, CL or all")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")
	addReportFlags(cmd)

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildBatchConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	// --metric and READSCORE_METRIC apply to every document.
	if cfg.Metric != "" {
		if _, err := model.ParseSelector(cfg.Metric); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	logger := setupLogger(cmd, cfg)

	ctx, cancel := signalContext(commandContext(cmd), logger)
	defer cancel()

	return runBatch(ctx, cmd, cfg, logger)
}

// buildBatchConfig creates a Config from the config file, the environment
// and the batch command's flags.
func buildBatchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applyInputFlags(cmd, cfg); err != nil {
		return nil, err
	}

	metric, err := cmd.Flags().GetString("metric")
	if err != nil {
		return nil, err
	}
	if metric != "" {
		cfg.Metric = metric
	}

	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}

	cfg.Targets = args
	return cfg, nil
}

// batchSelectorResolver returns the per-document selector. Invalid
// per-path preferences fall back to "all" with a warning.
func batchSelectorResolver(cfg *config.Config, logger *slog.Logger) func(path string) model.Selector {
	return func(path string) model.Selector {
		token := defaultSelectorToken(cfg, path)
		sel, err := model.ParseSelector(token)
		if err != nil {
			logger.Warn("ignoring invalid metric preference", "path", path, "metric", token)
			return model.SelectAll
		}
		return sel
	}
}

// runBatch analyzes all targets concurrently using BatchProcessor.
func runBatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Scoring %d documents (concurrency: %d)...\n", len(cfg.Targets), cfg.BatchSize)
	startTime := time.Now()

	out, err := openReportOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer out.Close()

	db, err := openHistory(cfg, logger)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	}
	if db != nil {
		defer db.Close()
	}

	paths := make([]string, len(cfg.Targets))
	for i, target := range cfg.Targets {
		paths[i] = documentPath(target)
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline { return createPipeline(cfg, logger) },
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithSelectorResolver(batchSelectorResolver(cfg, logger)),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	failed := 0
	batchErr := bp.ProcessBatchWithCallback(ctx, paths, func(analysis *model.Analysis, index int) {
		mu.Lock()
		defer mu.Unlock()

		if analysis.Failed() {
			failed++
			fmt.Fprintf(stderr, "[%d/%d] %s: %s\n", index+1, len(paths), cfg.Targets[index],
				describeError(analysis.Error))
			return
		}

		showText := cfg.ShowText || cfg.PreferencesFor(analysis.Path).ShowText
		if _, err := newReportWriter(cfg, out, showText).Write(analysis); err != nil {
			logger.Error("report failed", "path", analysis.Path, "error", err)
		}

		if err := saveAnalysis(ctx, db, analysis, logger); err != nil {
			logger.Warn("failed to save analysis", "path", analysis.Path, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Fprintf(stderr, "Scored %d documents in %s, %d failed\n",
		len(paths), elapsed.Round(time.Millisecond), failed)

	if batchErr != nil {
		return batchErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be scored", failed, len(paths))
	}
	return nil
}
