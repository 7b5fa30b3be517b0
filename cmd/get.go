// The get command does a one-shot fetch of a single URL, printing the
// structured result as indented JSON (or just the extracted content
// with --content-only).
package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/webfetch/core"
	"github.com/gaurav-prasanna/webfetch/service"
)

// Flag variables.
var (
	flagRaw         bool
	flagNoMetadata  bool
	flagMarkdown    bool
	flagTimeout     float64
	flagContentOnly bool
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Fetch a single page and print the structured result",
	Long: `Get fetches a webpage, extracts its main content and metadata, and
prints the result as indented JSON.

Examples:
  webfetch get https://example.com
  webfetch get https://example.com --markdown --content-only
  webfetch get https://example.com --raw --timeout 10`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&flagRaw, "raw", false, "Return raw HTML instead of extracted content")
	getCmd.Flags().BoolVar(&flagNoMetadata, "no-metadata", false, "Skip metadata extraction")
	getCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Extract content as Markdown")
	getCmd.Flags().Float64Var(&flagTimeout, "timeout", 0, "Request timeout in seconds (default 30)")
	getCmd.Flags().BoolVar(&flagContentOnly, "content-only", false, "Print only the extracted content")
}

func runGet(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := service.New(cfg, logger)
	defer svc.Close()

	req := core.FetchPageRequest{
		URL:     rawURL,
		Timeout: flagTimeout,
	}
	if flagRaw {
		f := false
		req.ExtractContent = &f
	}
	if flagNoMetadata {
		f := false
		req.IncludeMetadata = &f
	}
	if flagMarkdown {
		req.Format = service.FormatMarkdown
	}

	result, err := svc.FetchWebpage(cmd.Context(), req)
	if err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("fetch failed (%s): %s", result.ErrorKind, result.Error)
	}

	if flagContentOnly {
		fmt.Fprintln(os.Stdout, result.Content)
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
