// The serve command runs the MCP stdio server.
// Reads line-delimited JSON-RPC from stdin, writes responses to
// stdout. Only protocol JSON goes to stdout; all logging is stderr.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/webfetch/mcp"
	"github.com/gaurav-prasanna/webfetch/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.New(cfg, logger)
	defer svc.Close()

	logger.Info("mcp server starting")

	server := mcp.NewServer(svc, logger)
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("mcp server stopped")
	return nil
}
