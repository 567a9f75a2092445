package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enhancer/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "enhancer",
		Short: "Rewrite stored articles against topically related reference sources",
		Long: `Enhancer - Article Enhancement Pipeline

Sweeps the article store's backlog of not-yet-enhanced articles. For each
one it discovers candidate reference URLs, extracts their readable text,
rewrites the article against those references with a generative model, and
persists the result with traceable citations.

Examples:
  # Run one enhancement sweep over the backlog
  enhancer enhance

  # Preview drafts without writing to the store
  enhancer enhance --dry-run

  # List originals still awaiting enhancement
  enhancer backlog`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .enhancer.yaml)")

	rootCmd.AddCommand(NewEnhanceCmd())
	rootCmd.AddCommand(NewBacklogCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
