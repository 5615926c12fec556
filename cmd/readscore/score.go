package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/readscore/internal/config"
	"github.com/nao1215/readscore/internal/input"
	"github.com/nao1215/readscore/internal/model"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score FILE [METRIC]",
		Short: "Score the readability of a document",
		Long: `Score reads a plain text or HTML document and reports its readability.

METRIC is one of ` + strings.Join(model.SelectorTokens(), ", ") + ` (case-sensitive):
  ARI   Automated Readability Index
  FK    Flesch–Kincaid readability tests
  SMOG  Simple Measure of Gobbledygook
  CL    Coleman–Liau index
  all   all four scores and the average reader age

When METRIC is omitted and the terminal is interactive, you are asked for
one. Otherwise the metric from READSCORE_METRIC or the configuration file is
used, and "all" if neither is set.

Examples:
  # All four scores
  readscore score essay.txt all

  # Only Flesch–Kincaid, as Markdown
  readscore score --markdown essay.txt FK

  # Score an HTML page without saving it to history
  readscore score --no-save page.html SMOG

  # Write a JSON report including the text
  readscore score --json --show-text -o out/essay.json essay.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runScoreCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScoreConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	var token string
	if len(args) > 1 {
		token = args[1]
	}
	path := cfg.Targets[0]

	// A missing or oversized file is reported before anyone is asked for a metric.
	if err := input.NewLoader(input.WithMaxSize(cfg.MaxInputSize)).Check(path); err != nil {
		return fmt.Errorf("cannot score %s: %s: %w", path, describeError(err), err)
	}

	chooser := &selectorChooser{
		in:          cmd.InOrStdin(),
		out:         cmd.ErrOrStderr(),
		interactive: isTerminal(cmd.InOrStdin()),
		maxAttempts: cfg.MaxPromptAttempts,
	}
	selector, err := chooser.choose(token, defaultSelectorToken(cfg, path))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(commandContext(cmd), logger)
	defer cancel()

	return runScore(ctx, cmd, cfg, selector, logger)
}

// buildScoreConfig creates a Config from the config file, the environment
// and the score command's flags.
func buildScoreConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
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

	cfg.Targets = args[:1]
	cfg.ShowText = cfg.ShowText || cfg.PreferencesFor(args[0]).ShowText
	return cfg, nil
}

// runScore analyzes one document, prints its report and saves it.
func runScore(ctx context.Context, cmd *cobra.Command, cfg *config.Config, selector model.Selector, logger *slog.Logger) error {
	path := cfg.Targets[0]
	analysis := model.NewAnalysis(documentPath(path), selector)

	logger.Info("starting analysis",
		"path", analysis.Path,
		"selector", selector.String(),
		"saveToDB", cfg.SaveToDB,
	)

	if err := createPipeline(cfg, logger).Execute(ctx, analysis); err != nil {
		logger.Debug("analysis failed", "path", path, "error", err)
		return fmt.Errorf("cannot score %s: %s: %w", path, describeError(err), err)
	}

	out, err := openReportOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := newReportWriter(cfg, out, cfg.ShowText).Write(analysis); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	db, err := openHistory(cfg, logger)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	if db != nil {
		defer db.Close()
		if err := saveAnalysis(ctx, db, analysis, logger); err != nil {
			logger.Warn("failed to save analysis", "path", analysis.Path, "error", err)
		}
	}

	return nil
}
