// Package cmd defines the CLI commands for the emploitogo-crawler executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tchluc/emploitogo-crawler/internal/config"
	"github.com/tchluc/emploitogo-crawler/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emploitogo-crawler",
		Short: "Scrapes job postings from emploitogo.info",
		Long: `emploitogo-crawler collects job postings from emploitogo.info,
normalizes them into clean structured records, and maintains a
deduplicated JSON dataset plus a post-processed structured view.`,

		SilenceUsage: true,

		// Config and logging are built here so every subcommand gets the
		// same initialized services.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.Logging.Verbose = cfg.Logging.Verbose || verbose

			logger, err = logging.New(cfg.Logging)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},

		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug console output")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newProcessCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (see %s for details)\n", err, cfg.Logging.FilePath())
		os.Exit(1)
	}
}
