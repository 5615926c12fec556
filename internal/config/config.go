package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/readscore/internal/input"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent analyses keeps file I/O and CPU busy
	// without loading too many documents into memory at once.
	DefaultBatchSize = 4

	// DefaultMaxInputSize caps a single document at 10 MiB. Readability
	// statistics over anything larger are meaningless, and the whole file is
	// held in memory.
	DefaultMaxInputSize = input.DefaultMaxSize

	// DefaultMaxPromptAttempts is how many times the user may re-enter an
	// unrecognized metric before the command gives up.
	DefaultMaxPromptAttempts = 3

	// DefaultMetric is the selector used when none is given and no prompt
	// can be shown.
	DefaultMetric = "all"

	// DefaultFormat lets the loader decide between text and HTML.
	DefaultFormat = string(input.ModeAuto)

	// AppName is the application name used for XDG directory paths.
	AppName = "readscore"
)

// Config holds all configuration options for readscore.
// This struct is populated from defaults, the config file, the environment
// and CLI flags, in that order, and passed through the application rather
// than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Targets is the list of document paths to analyze.
	Targets []string

	// Metric is the selector token ("ARI", "FK", "SMOG", "CL" or "all").
	// Empty means "ask the user, or fall back to DefaultMetric".
	Metric string

	// Format is the input interpretation: "auto", "text" or "html".
	Format string

	// MaxInputSize is the maximum document size in bytes.
	MaxInputSize int64

	// MaxPromptAttempts bounds how often an unrecognized metric is re-asked.
	MaxPromptAttempts int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches log output to JSON.
	LogJSON bool

	// BatchSize is the number of concurrent analyses in batch mode.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the usual locations (see FindConfigFile).
	ConfigFilePath string

	// Preferences holds per-path preferences loaded from the config file.
	Preferences *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// TeeReport also prints a terminal report to stdout when ReportFile is set.
	TeeReport bool

	// ShowText echoes the loaded document before the scores.
	ShowText bool

	// DBDir is the directory path for storing the history database.
	// Defaults to XDG data directory (~/.local/share/readscore on Linux).
	DBDir string

	// SaveToDB indicates whether to save analyses to the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (batch size, size cap).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:            DefaultFormat,
		MaxInputSize:      DefaultMaxInputSize,
		MaxPromptAttempts: DefaultMaxPromptAttempts,
		BatchSize:         DefaultBatchSize,
		DBDir:             XDGDataDir(),
		SaveToDB:          true,
	}
}

// XDGDataDir returns the XDG data directory for readscore.
// On Linux: ~/.local/share/readscore
// On macOS: ~/Library/Application Support/readscore
// On Windows: %LOCALAPPDATA%\readscore
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for readscore.
// On Linux: ~/.config/readscore
// On macOS: ~/Library/Application Support/readscore
// On Windows: %APPDATA%\readscore
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found. Metric is not checked here: it is
// only a fallback, and the commands parse it when they fall back to it.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxPromptAttempts <= 0 {
		return ErrInvalidPromptAttempts
	}

	if c.MaxInputSize <= 0 {
		return ErrInvalidMaxInputSize
	}

	if _, err := input.ParseMode(c.Format); err != nil {
		return err
	}

	return nil
}
