package config

import (
	"path/filepath"
	"sort"
)

// Preferences holds per-document analysis preferences.
type Preferences struct {
	// Metric is the default selector token for matching documents.
	Metric string `yaml:"metric,omitempty"`

	// Format overrides input detection: "auto", "text" or "html".
	Format string `yaml:"format,omitempty"`

	// ShowText echoes matching documents before their scores.
	ShowText bool `yaml:"showText,omitempty"`
}

// File represents the structure of the .readscore configuration file.
type File struct {
	// Defaults apply to every document unless a path pattern overrides them.
	Defaults Preferences `yaml:"defaults,omitempty"`

	// Paths maps glob patterns to preferences. Patterns are matched with
	// filepath.Match against both the full path and the base name.
	Paths map[string]Preferences `yaml:"paths,omitempty"`

	// MaxPromptAttempts bounds how often an unrecognized metric is re-asked.
	// Zero keeps the built-in default.
	MaxPromptAttempts int `yaml:"maxPromptAttempts,omitempty"`

	// History enables or disables saving analyses. Nil keeps the default.
	History *bool `yaml:"history,omitempty"`
}

// GetPreferences returns the preferences for a document path.
// It starts from Defaults and applies every matching pattern in lexical
// order, so later, more specific patterns can be named to sort last.
func (cf *File) GetPreferences(path string) Preferences {
	result := cf.Defaults

	patterns := make([]string, 0, len(cf.Paths))
	for pattern := range cf.Paths {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		if !matchPath(pattern, path) {
			continue
		}
		p := cf.Paths[pattern]
		if p.Metric != "" {
			result.Metric = p.Metric
		}
		if p.Format != "" {
			result.Format = p.Format
		}
		if p.ShowText {
			result.ShowText = true
		}
	}

	return result
}

// matchPath reports whether pattern matches path or its base name.
// Malformed patterns never match.
func matchPath(pattern, path string) bool {
	if ok, err := filepath.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
		return true
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}
