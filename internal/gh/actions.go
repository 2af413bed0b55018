package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ActionsScope provides read operations on workflow runs and jobs.
type ActionsScope struct {
	repo *RepoScope
}

// GetRun returns a single workflow run by ID.
func (s *ActionsScope) GetRun(ctx context.Context, runID int64) (*WorkflowRun, error) {
	u := fmt.Sprintf("%s/repos/%s/actions/runs/%d",
		s.repo.client.baseURL, s.repo.fullName, runID)

	var run WorkflowRun
	if err := s.repo.client.doJSON(ctx, "GET", u, "get workflow run", nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListJobs returns all jobs of the workflow run, auto-paginating.
func (s *ActionsScope) ListJobs(ctx context.Context, runID int64) ([]WorkflowJob, error) {
	var all []WorkflowJob
	page := 1
	perPage := 100

	for {
		u := fmt.Sprintf("%s/repos/%s/actions/runs/%d/jobs?per_page=%d&page=%d",
			s.repo.client.baseURL, s.repo.fullName, runID, perPage, page)

		var paged PagedJobs
		if err := s.repo.client.doJSON(ctx, "GET", u, "list workflow jobs", nil, &paged); err != nil {
			return nil, err
		}
		all = append(all, paged.Jobs...)
		if len(paged.Jobs) < perPage {
			break
		}
		page++
	}
	return all, nil
}

// StatusesScope provides commit-status operations.
type StatusesScope struct {
	repo *RepoScope
}

// Create sets a commit status on the given SHA.
func (s *StatusesScope) Create(ctx context.Context, sha string, status CommitStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("create status: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/statuses/%s",
		s.repo.client.baseURL, s.repo.fullName, url.PathEscape(sha))

	return s.repo.client.doJSON(ctx, "POST", u, "create status", bytes.NewReader(payload), nil)
}
