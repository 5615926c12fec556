package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nao1215/readscore/internal/config"
	"github.com/nao1215/readscore/internal/database"
	"github.com/nao1215/readscore/internal/input"
	applog "github.com/nao1215/readscore/internal/log"
	"github.com/nao1215/readscore/internal/model"
	"github.com/nao1215/readscore/internal/pipeline"
	"github.com/nao1215/readscore/internal/readability"
	"github.com/nao1215/readscore/internal/report"
)

// getBoolFlag retrieves a bool flag from the command, including persistent
// flags inherited from the root. Missing flags read as false.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// getStringFlag retrieves a string flag, returning "" if it is not defined.
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// loadConfig builds a Config from defaults, .env, the config file and the
// environment. Command-specific flags are applied by the caller afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.LogJSON = getBoolFlag(cmd, "log-json")
	cfg.ConfigFilePath = getStringFlag(cmd, "config")

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, run with built-in defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(cf)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// applyReportFlags copies the shared report flags into cfg.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if cfg.ShowText, err = cmd.Flags().GetBool("show-text"); err != nil {
		return err
	}
	if cfg.TeeReport, err = cmd.Flags().GetBool("tee"); err != nil {
		return err
	}
	return nil
}

// applyInputFlags copies the shared input and history flags into cfg.
func applyInputFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("max-size") {
		size, err := cmd.Flags().GetInt64("max-size")
		if err != nil {
			return err
		}
		cfg.MaxInputSize = size
	}
	if cmd.Flags().Changed("format") {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = format
	}
	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return err
	}
	if noSave {
		cfg.SaveToDB = false
	}
	return nil
}

// addReportFlags registers the flags shared by score and batch.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")
	cmd.Flags().Bool("show-text", false,
		"Print the document text before its scores")
	cmd.Flags().Int64("max-size", config.DefaultMaxInputSize,
		"Maximum document size in bytes")
	cmd.Flags().String("format", config.DefaultFormat,
		"How documents are read: auto, text or html")
	cmd.Flags().Bool("no-save", false,
		"Do not save the analysis to the history database")
}

// setupLogger creates a structured logger based on the logging settings.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return applog.NewJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return applog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// commandContext returns the command's context or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// documentPath returns the path used to identify a document in reports and
// history. Relative paths are made absolute so history entries match
// regardless of the working directory.
func documentPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// modeResolver returns the per-document input mode from the config file.
func modeResolver(cfg *config.Config, logger *slog.Logger) func(path string) input.Mode {
	return func(path string) input.Mode {
		format := cfg.PreferencesFor(path).Format
		if format == "" {
			return ""
		}
		mode, err := input.ParseMode(format)
		if err != nil {
			logger.Warn("ignoring invalid format preference", "path", path, "format", format)
			return ""
		}
		return mode
	}
}

// createPipeline creates the load and analyze pipeline for cfg.
func createPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	mode, err := input.ParseMode(cfg.Format)
	if err != nil {
		mode = input.ModeAuto
	}
	p := pipeline.DefaultPipeline(
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineMaxInputSize(cfg.MaxInputSize),
		pipeline.WithPipelineMode(mode),
		pipeline.WithPipelineModeResolver(modeResolver(cfg, logger)),
	)
	logger.Debug("pipeline ready", "steps", p.StepNames(), "mode", string(mode))
	return p
}

// openHistory opens the history database when saving is enabled.
// It returns nil when saving is disabled.
func openHistory(cfg *config.Config, logger *slog.Logger) (*database.HistoryDB, error) {
	if !cfg.SaveToDB {
		return nil, nil
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// saveAnalysis saves the analysis to the database if enabled.
// If db is nil or the analysis failed, this function is a no-op.
func saveAnalysis(ctx context.Context, db *database.HistoryDB, analysis *model.Analysis, logger *slog.Logger) error {
	if db == nil || analysis.Failed() {
		return nil
	}

	id, err := db.SaveAnalysis(ctx, analysis)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	logger.Info("analysis saved to database", "path", analysis.Path, "id", id)
	return nil
}

// reportOutput is where reports are written.
type reportOutput struct {
	w     io.Writer
	file  *os.File
	color bool

	// echo receives a terminal report next to the report file, if set.
	echo      io.Writer
	echoColor bool
}

// openReportOutput opens cfg.ReportFile, or falls back to stdout.
// Report files are created with mode 0600.
func openReportOutput(cfg *config.Config, stdout io.Writer) (*reportOutput, error) {
	if cfg.ReportFile == "" {
		return &reportOutput{w: stdout, color: isTerminal(stdout)}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	out := &reportOutput{w: f, file: f}
	if cfg.TeeReport {
		out.echo = stdout
		out.echoColor = isTerminal(stdout)
	}
	return out, nil
}

// Close closes the report file, if any.
func (o *reportOutput) Close() error {
	if o.file == nil {
		return nil
	}
	return o.file.Close()
}

// newReportWriter returns the writer for the requested report format.
// When out echoes to stdout, the terminal report is written after the file.
func newReportWriter(cfg *config.Config, out *reportOutput, showText bool) report.Writer {
	w := formatWriter(cfg, out, showText)
	if out.echo == nil {
		return w
	}
	return report.NewMultiWriter(w, report.NewSimpleWriter(out.echo,
		report.WithColor(out.echoColor),
		report.WithShowText(showText),
	))
}

func formatWriter(cfg *config.Config, out *reportOutput, showText bool) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out.w,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()),
			report.WithJSONText(showText),
		)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out.w, report.WithMarkdownText(showText))
	default:
		return report.NewSimpleWriter(out.w,
			report.WithColor(out.color),
			report.WithShowText(showText),
		)
	}
}

// describeError turns a pipeline error into a user-facing message.
func describeError(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, input.ErrInputTooLarge):
		return "the document is larger than the maximum size (see --max-size)"
	case errors.Is(err, input.ErrInputRead):
		return "the document could not be read"
	case errors.Is(err, readability.ErrDegenerateInput):
		return "the document has no words or no complete sentences to score"
	case errors.Is(err, context.Canceled):
		return "the analysis was cancelled"
	default:
		return err.Error()
	}
}
