package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"overlayhub/internal/prbot"
)

var updateFlags struct {
	workspace string
	ref       string
	plugins   []string
	branch    string
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Open a workspace update pull request",
	Long: "Update pins a workspace to a new upstream commit by opening a pull\n" +
		"request against the target branch. The run is idempotent: if the pin\n" +
		"already matches or an update PR is already in flight, nothing is written.",
	RunE: runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateFlags.workspace, "workspace", "", "Workspace name (required)")
	f.StringVar(&updateFlags.ref, "ref", "", "Upstream commit SHA to pin (required)")
	f.StringArrayVar(&updateFlags.plugins, "plugin", nil, "Plugin path, repeatable")
	f.StringVar(&updateFlags.branch, "branch", "", "Target branch (default: BRANCH_NAME)")

	_ = updateCmd.MarkFlagRequired("workspace")
	_ = updateCmd.MarkFlagRequired("ref")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	branch := cfg.Branch
	if updateFlags.branch != "" {
		branch = updateFlags.branch
	}

	updater := prbot.NewUpdater(client, cfg.Repo, cfg.Labels.All())
	res, err := updater.Apply(cmd.Context(), prbot.UpdateRequest{
		Workspace: updateFlags.workspace,
		Ref:       updateFlags.ref,
		Plugins:   updateFlags.plugins,
		Branch:    branch,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch res.Outcome {
	case prbot.SkippedUpToDate:
		fmt.Fprintf(out, "Workspace %s already pinned at %s\n", updateFlags.workspace, updateFlags.ref)
	case prbot.SkippedExistingPR:
		fmt.Fprintf(out, "Update already in flight on branch %s\n", res.Branch)
	default:
		fmt.Fprintf(out, "Opened PR #%d: %s\n", res.PRNumber, res.PRURL)
	}
	return nil
}
