package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"overlayhub/internal/config"
	"overlayhub/internal/gh"
	"overlayhub/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "overlayhub",
	Short: "Workspace status reporting and update automation for plugin overlays",
	Long: "Overlayhub maintains the plugin overlay repository: it generates the\n" +
		"per-branch workspace status page, opens workspace update pull requests,\n" +
		"and reports CI check results back onto them.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.Version = version
}

// setup loads configuration, initializes logging, and builds the API client.
// Shared by every subcommand.
func setup() (*config.Config, *gh.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	format := cfg.Log.Format
	if format == "" {
		format = logging.AutoFormat()
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level), format)

	client, err := gh.New(cfg.APIBaseURL, cfg.Token,
		gh.WithLogger(logging.New("gh")),
		gh.WithTimeout(30*time.Second))
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
