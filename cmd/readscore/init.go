package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/readscore/internal/config"
)

//go:embed templates/readscore.yaml
var configTemplate embed.FS

// templatePath is the embedded template location.
const templatePath = "templates/readscore.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new readscore configuration file",
		Long: `Initialize creates a new .readscore configuration file in the current directory.

The generated file includes:
- Default metric and input format
- Commented examples for per-document preferences
- Documentation for all available options

Examples:
  # Create .readscore in current directory
  readscore init

  # Create config file at a specific path
  readscore init -o myconfig.yaml

  # Force overwrite existing file
  readscore init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := writeFileWithDirs(outputPath, content); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure preferences such as:")
	fmt.Fprintln(out, "  - The default metric")
	fmt.Fprintln(out, "  - How documents are read (text or HTML)")
	fmt.Fprintln(out, "  - Per-document overrides by file pattern")

	return nil
}

// writeFileWithDirs writes data to path with mode 0600, creating parent
// directories as needed.
func writeFileWithDirs(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0600)
}
