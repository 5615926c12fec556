// Package config provides configuration structures and utilities for readscore.
// It defines the options for loading documents, selecting metrics, writing
// reports and keeping analysis history, and it reads the optional .readscore
// file and environment overrides.
package config
