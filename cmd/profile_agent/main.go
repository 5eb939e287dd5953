// Package main provides the entry point for the talent profile agent: the API
// server and a client that drives the profile store against it.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool

	// Client connection flags, merged over the config file.
	baseURL     string
	token       string
	httpTimeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Talent profile API server and client",
	Long: `profile_agent serves the talent profile API and edits a talent's resume
against it. Client commands read a JSON or YAML config file (--config) whose
values are overridden by flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if logger != nil {
			return nil
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a JSON or YAML client config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and per-transition output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Talent API base URL (default $TALENT_API_URL or "+defaultBaseURLHint+")")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (default $TALENT_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "timeout", 0, "Per-request timeout, 0 for none")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
