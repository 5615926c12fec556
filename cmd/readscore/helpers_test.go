package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleText scores ARI 14, FK 12, SMOG 14 and CL 18 years.
const sampleText = "The children played outside until dinner. Their mother called them home. " +
	"Everyone washed their hands and sat down together."

// executeCommand runs the root command with args and captures its output.
// Stdin is empty and never a terminal.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestFile writes content to name inside dir and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// writeTestConfig writes a config file so tests never read the user's own.
func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return writeTestFile(t, dir, "readscore.yaml", content)
}

// setupTestLogger returns a logger that discards output.
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
