// The http command runs the REST server.
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/webfetch/httpapi"
	"github.com/gaurav-prasanna/webfetch/service"
)

var flagAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Run the HTTP REST server",
	Args:  cobra.NoArgs,
	RunE:  runHTTP,
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8000)")
}

func runHTTP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.HTTP.Addr = flagAddr
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

	server := httpapi.New(svc, logger)
	return server.ListenAndServe(ctx, cfg.HTTP.Addr)
}
