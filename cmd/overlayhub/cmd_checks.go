package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"overlayhub/internal/prbot"
)

var checksFlags struct {
	runID    int64
	prNumber int
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Summarize a workflow run onto its pull request",
	Long: "Checks reads a completed workflow run, sets a commit status on the\n" +
		"run's head SHA, and posts a per-job summary comment on the pull request.",
	RunE: runChecks,
}

func init() {
	f := checksCmd.Flags()
	f.Int64Var(&checksFlags.runID, "run-id", 0, "Workflow run ID (required)")
	f.IntVar(&checksFlags.prNumber, "pr", 0, "Pull request number (required)")

	_ = checksCmd.MarkFlagRequired("run-id")
	_ = checksCmd.MarkFlagRequired("pr")
}

func runChecks(cmd *cobra.Command, _ []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	checks := prbot.NewChecks(client, cfg.Repo)
	if err := checks.Summarize(cmd.Context(), checksFlags.runID, checksFlags.prNumber); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Checks summarized for run %d on PR #%d\n", checksFlags.runID, checksFlags.prNumber)
	return nil
}
