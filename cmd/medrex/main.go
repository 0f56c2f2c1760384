package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/medrex/internal/config"
	"github.com/oxhq/medrex/pattern"
)

var version = "dev"

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	// User-defined patterns extend the built-in table for every subcommand.
	if cfg.PatternFile != "" {
		if err := pattern.Default.LoadFile(cfg.PatternFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading pattern file: %v\n", err)
			os.Exit(1)
		}
	}

	rootCmd := newRootCmd(cfg)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "medrex",
		Short:         "Named regex patterns and cohort extraction for medical text",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newPatternsCmd(),
		newMatchCmd(),
		newSearchCmd(),
		newFindAllCmd(),
		newExtractCmd(cfg),
		newScanCmd(cfg),
		newRedactCmd(),
		newCodesCmd(),
		newLogicCmd(),
		newFinderCmd(),
		newHistoryCmd(cfg),
	)
	return rootCmd
}
