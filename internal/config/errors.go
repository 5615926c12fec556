package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no document path is given.
	ErrNoTarget = errors.New("no target specified: provide a document path")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidPromptAttempts is returned when maxPromptAttempts is not positive.
	ErrInvalidPromptAttempts = errors.New("invalid prompt attempts: must be positive")

	// ErrInvalidMaxInputSize is returned when the input size cap is not positive.
	ErrInvalidMaxInputSize = errors.New("invalid max input size: must be positive")
)
