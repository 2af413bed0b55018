package prbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"overlayhub/internal/gh"
	"overlayhub/internal/logging"
)

// statusContext names the commit status line set by check summaries.
const statusContext = "overlayhub/checks"

// Checks summarizes a workflow run back onto its pull request: one commit
// status on the run's head SHA plus a per-job comment on the PR.
type Checks struct {
	client *gh.Client
	repo   string // overlay repository, "owner/name"
	logger *slog.Logger
}

// NewChecks returns a Checks reporter for the overlay repository.
func NewChecks(client *gh.Client, repo string) *Checks {
	return &Checks{
		client: client,
		repo:   repo,
		logger: logging.New("checks"),
	}
}

// Summarize reads the workflow run and its jobs, sets a commit status on
// the run's head SHA, and posts a per-job summary comment on the PR.
// Unlike report enrichment this does not degrade: any API failure is
// returned so the caller exits non-zero.
func (c *Checks) Summarize(ctx context.Context, runID int64, prNumber int) error {
	repo := c.client.Repo(c.repo)

	run, err := repo.Actions().GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("get workflow run %d: %w", runID, err)
	}
	jobs, err := repo.Actions().ListJobs(ctx, runID)
	if err != nil {
		return fmt.Errorf("list jobs for run %d: %w", runID, err)
	}

	failed := failedJobs(jobs)
	state, description := statusFor(len(jobs), len(failed))

	if err := repo.Statuses().Create(ctx, run.HeadSHA, gh.CommitStatus{
		State:       state,
		Context:     statusContext,
		Description: description,
		TargetURL:   run.HTMLURL,
	}); err != nil {
		return fmt.Errorf("set commit status on %s: %w", run.HeadSHA, err)
	}

	if _, err := repo.Pulls().CreateComment(ctx, prNumber, summaryComment(run, jobs, failed)); err != nil {
		return fmt.Errorf("comment on PR %d: %w", prNumber, err)
	}

	c.logger.Info("checks summarized",
		"run", runID, "pr", prNumber, "jobs", len(jobs), "failed", len(failed), "state", state)
	return nil
}

func failedJobs(jobs []gh.WorkflowJob) []gh.WorkflowJob {
	var failed []gh.WorkflowJob
	for _, j := range jobs {
		switch j.Conclusion {
		case "failure", "cancelled", "timed_out":
			failed = append(failed, j)
		}
	}
	return failed
}

func statusFor(total, failed int) (state, description string) {
	if failed > 0 {
		return "failure", fmt.Sprintf("%d of %d jobs failed", failed, total)
	}
	return "success", fmt.Sprintf("%d jobs passed", total)
}

func summaryComment(run *gh.WorkflowRun, jobs []gh.WorkflowJob, failed []gh.WorkflowJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Check results for [%s](%s)\n\n", run.Name, run.HTMLURL)
	if len(failed) > 0 {
		fmt.Fprintf(&b, "**%d of %d jobs failed.**\n\n", len(failed), len(jobs))
	} else {
		fmt.Fprintf(&b, "All %d jobs passed.\n\n", len(jobs))
	}
	for _, j := range jobs {
		icon := "✅"
		switch j.Conclusion {
		case "failure", "cancelled", "timed_out":
			icon = "❌"
		case "skipped":
			icon = "⏭️"
		}
		if j.HTMLURL != "" {
			fmt.Fprintf(&b, "- %s [%s](%s)\n", icon, j.Name, j.HTMLURL)
		} else {
			fmt.Fprintf(&b, "- %s %s\n", icon, j.Name)
		}
	}
	return b.String()
}
