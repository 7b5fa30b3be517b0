// Package cmd implements the CLI commands for WebFetch using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaurav-prasanna/webfetch/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "webfetch",
	Short: "Fetch web pages as structured data for agents and tools",
	Long: `WebFetch fetches remote web pages and derives structured artifacts:
extracted main content, page metadata, classified links, and term search
results.

Usage:
  webfetch serve            run the MCP stdio server
  webfetch http             run the HTTP REST server
  webfetch get <url>        fetch a single page and print the result`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (optional)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the optional .env file, then the optional YAML
// config, then env overrides and defaults.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load() // optional .env, absence is fine
	return config.Load(flagConfig)
}

// newLogger builds a stderr JSON logger at the configured level.
// stderr only: the serve command owns stdout for protocol JSON.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}
