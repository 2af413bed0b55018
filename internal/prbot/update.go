// Package prbot automates workspace update pull requests against the
// overlay repository. Every run is idempotent: re-running with the same
// inputs performs zero write calls, either because the pinned commit
// already matches or because the deterministic update branch exists.
package prbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"overlayhub/internal/gh"
	"overlayhub/internal/logging"
)

// Outcome says what Apply did (or deliberately did not do).
type Outcome int

const (
	// Created means a new branch, commit, and pull request were opened.
	Created Outcome = iota
	// SkippedUpToDate means the pinned commit already matches the request.
	SkippedUpToDate
	// SkippedExistingPR means the update branch already exists, so a PR
	// for this exact update is already in flight.
	SkippedExistingPR
)

// String returns the outcome for logs.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SkippedUpToDate:
		return "skipped-up-to-date"
	case SkippedExistingPR:
		return "skipped-existing-pr"
	default:
		return "unknown"
	}
}

// UpdateRequest describes one desired workspace update.
type UpdateRequest struct {
	Workspace string   // workspace name under workspaces/
	Ref       string   // upstream commit SHA to pin
	Plugins   []string // plugin paths for plugins-list.yaml
	Branch    string   // target branch of the overlay repository
}

// Result reports what happened. PRNumber and PRURL are set only when a
// pull request was actually opened.
type Result struct {
	Outcome  Outcome
	IsUpdate bool // an earlier pin existed and differs
	Branch   string
	PRNumber int
	PRURL    string
}

// Updater opens workspace update pull requests.
type Updater struct {
	client *gh.Client
	repo   string // overlay repository, "owner/name"
	labels []string
	logger *slog.Logger
}

// NewUpdater returns an Updater for the overlay repository. labels are
// attached to every opened PR so the report can recognize it as pending.
func NewUpdater(client *gh.Client, repo string, labels []string) *Updater {
	return &Updater{
		client: client,
		repo:   repo,
		labels: labels,
		logger: logging.New("prbot"),
	}
}

// BranchName is the deterministic update branch for a workspace on a
// target branch. It depends only on the two names, not on the pinned
// commit, so a rerun for the same workspace dedupes on branch existence.
func BranchName(targetBranch, workspace string) string {
	return "workspace-update/" + strings.ReplaceAll(targetBranch, "/", "-") + "/" + workspace
}

func sourceCommitPath(workspace string) string {
	return "workspaces/" + workspace + "/source-commit"
}

func pluginsListPath(workspace string) string {
	return "workspaces/" + workspace + "/plugins-list.yaml"
}

// Apply drives one update end to end. The two existence probes treat 404
// as the normal path; any other API failure aborts the run.
func (u *Updater) Apply(ctx context.Context, req UpdateRequest) (*Result, error) {
	if req.Workspace == "" || req.Ref == "" || req.Branch == "" {
		return nil, fmt.Errorf("apply update: workspace, ref, and branch are required")
	}

	repo := u.client.Repo(u.repo)
	res := &Result{Branch: BranchName(req.Branch, req.Workspace)}

	current, err := repo.Contents().GetString(ctx, sourceCommitPath(req.Workspace), req.Branch)
	switch {
	case err == nil:
		if strings.TrimSpace(current) == req.Ref {
			res.Outcome = SkippedUpToDate
			u.logger.Info("workspace already pinned", "workspace", req.Workspace, "ref", req.Ref)
			return res, nil
		}
		res.IsUpdate = true
	case gh.IsNotFound(err):
		// First pin for this workspace.
	default:
		return nil, fmt.Errorf("check current pin: %w", err)
	}

	if _, err := repo.Git().GetRef(ctx, "heads/"+res.Branch); err == nil {
		res.Outcome = SkippedExistingPR
		u.logger.Info("update branch already exists", "workspace", req.Workspace, "branch", res.Branch)
		return res, nil
	} else if !gh.IsNotFound(err) {
		return nil, fmt.Errorf("check update branch: %w", err)
	}

	tip, err := repo.Git().GetRef(ctx, "heads/"+req.Branch)
	if err != nil {
		return nil, fmt.Errorf("resolve branch %s: %w", req.Branch, err)
	}
	tipSHA := tip.Object.SHA

	// base_tree must name a tree object, so read it off the tip commit.
	tipCommit, err := repo.Git().GetCommit(ctx, tipSHA)
	if err != nil {
		return nil, fmt.Errorf("read tip commit: %w", err)
	}
	if tipCommit.Tree == nil {
		return nil, fmt.Errorf("read tip commit: %s has no tree", tipSHA)
	}

	pluginsYAML, err := yaml.Marshal(req.Plugins)
	if err != nil {
		return nil, fmt.Errorf("render plugins list: %w", err)
	}

	tree, err := repo.Git().CreateTree(ctx, tipCommit.Tree.SHA, []gh.TreeEntry{
		{Path: pluginsListPath(req.Workspace), Mode: "100644", Type: "blob", Content: string(pluginsYAML)},
		{Path: sourceCommitPath(req.Workspace), Mode: "100644", Type: "blob", Content: req.Ref + "\n"},
	})
	if err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}

	commit, err := repo.Git().CreateCommit(ctx, commitMessage(&req, res.IsUpdate), tree.SHA, []string{tipSHA})
	if err != nil {
		return nil, fmt.Errorf("create commit: %w", err)
	}

	if _, err := repo.Git().CreateRef(ctx, "refs/heads/"+res.Branch, commit.SHA); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	pr, err := repo.Pulls().Create(ctx, gh.NewPullRequest{
		Title: prTitle(&req, res.IsUpdate),
		Head:  res.Branch,
		Base:  req.Branch,
		Body:  prBody(&req, res.IsUpdate),
	})
	if err != nil {
		return nil, fmt.Errorf("open pull request: %w", err)
	}

	if len(u.labels) > 0 {
		if err := repo.Pulls().AddLabels(ctx, pr.Number, u.labels); err != nil {
			return nil, fmt.Errorf("label pull request: %w", err)
		}
	}

	res.Outcome = Created
	res.PRNumber = pr.Number
	res.PRURL = pr.HTMLURL
	u.logger.Info("pull request opened",
		"workspace", req.Workspace, "pr", pr.Number, "branch", res.Branch, "update", res.IsUpdate)
	return res, nil
}

func shortRef(ref string) string {
	if len(ref) > 7 {
		return ref[:7]
	}
	return ref
}

func commitMessage(req *UpdateRequest, isUpdate bool) string {
	if isUpdate {
		return fmt.Sprintf("Update %s to %s", req.Workspace, shortRef(req.Ref))
	}
	return fmt.Sprintf("Add %s at %s", req.Workspace, shortRef(req.Ref))
}

func prTitle(req *UpdateRequest, isUpdate bool) string {
	if isUpdate {
		return fmt.Sprintf("Update workspace %s to %s", req.Workspace, shortRef(req.Ref))
	}
	return fmt.Sprintf("Add workspace %s at %s", req.Workspace, shortRef(req.Ref))
}

func prBody(req *UpdateRequest, isUpdate bool) string {
	var b strings.Builder
	if isUpdate {
		fmt.Fprintf(&b, "Updates `workspaces/%s` to upstream commit `%s`.\n\n", req.Workspace, req.Ref)
	} else {
		fmt.Fprintf(&b, "Adds `workspaces/%s` pinned at upstream commit `%s`.\n\n", req.Workspace, req.Ref)
	}
	fmt.Fprintf(&b, "Plugins (%d):\n", len(req.Plugins))
	for _, p := range req.Plugins {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	return b.String()
}
