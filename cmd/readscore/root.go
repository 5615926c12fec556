package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for readscore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readscore",
		Short: "Readability scores and reader ages for English text",
		Long: `readscore estimates how difficult an English text is to read.

It computes four classic readability formulas (Automated Readability Index,
Flesch–Kincaid, SMOG and Coleman–Liau) and maps each score to the
approximate age of a reader who can understand the text.

Plain text and HTML documents are supported. Analyses are kept in a local
history database so changes to a document can be tracked over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .readscore in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
