// Package log provides logging helpers built on top of the standard slog
// package.
//
// This package extends slog to provide:
//   - Clipping of long string values such as document text
//   - Configurable log levels with verbose mode support
//   - Text and JSON output with the same behavior
//
// # Clipping
//
// The ClipHandler shortens every string attribute longer than ValueLimit
// runes. Attributes named text, sentence, word or content hold document
// prose and are shortened at ContentLimit runes. Clipped values end with
// ClipMarker and the number of runes removed.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("loaded document",
//	    "path", "essay.txt",
//	    "text", text, // clipped to ContentLimit runes
//	)
//
//	slog.SetDefault(logger)
package log
