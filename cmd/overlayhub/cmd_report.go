package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"overlayhub/internal/report"
)

var reportFlags struct {
	branch    string
	outputDir string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the workspace status page for a branch",
	Long: "Report enumerates the local workspace directories, enriches each one\n" +
		"from the GitHub API, and writes one Markdown status page named after\n" +
		"the branch. Unreachable upstream data degrades to placeholders.",
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.branch, "branch", "", "Target branch (default: BRANCH_NAME)")
	f.StringVar(&reportFlags.outputDir, "output-dir", "", "Output directory (default: configured paths.output_dir)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	branch := cfg.Branch
	if reportFlags.branch != "" {
		branch = reportFlags.branch
	}
	outputDir := cfg.Paths.OutputDir
	if reportFlags.outputDir != "" {
		outputDir = reportFlags.outputDir
	}

	gen := &report.Generator{
		Client:        client,
		Repo:          cfg.Repo,
		Branch:        branch,
		Labels:        cfg.Labels.All(),
		WorkspacesDir: cfg.Paths.WorkspacesDir,
		ListsDir:      cfg.Paths.ListsDir,
		OutputDir:     outputDir,
	}

	path, err := gen.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", path)
	return nil
}
