package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// PullsScope provides operations on pull requests.
type PullsScope struct {
	repo *RepoScope
}

// ListPullsOption configures filter and pagination for PR listing.
type ListPullsOption func(params url.Values)

// List returns one page of pull requests matching the given filters.
func (s *PullsScope) List(ctx context.Context, opts ...ListPullsOption) ([]PullRequestResource, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}

	u := fmt.Sprintf("%s/repos/%s/pulls?%s",
		s.repo.client.baseURL, s.repo.fullName, params.Encode())

	var prs []PullRequestResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "list pulls", nil, &prs); err != nil {
		return nil, err
	}
	return prs, nil
}

// ListAll returns all pull requests matching the filters, auto-paginating.
func (s *PullsScope) ListAll(ctx context.Context, opts ...ListPullsOption) ([]PullRequestResource, error) {
	var all []PullRequestResource
	page := 1
	perPage := 100

	for {
		pageOpts := append(opts,
			WithPullPerPage(perPage),
			WithPullPage(page),
		)
		prs, err := s.List(ctx, pageOpts...)
		if err != nil {
			return nil, err
		}
		all = append(all, prs...)
		if len(prs) < perPage {
			break
		}
		page++
	}
	return all, nil
}

// ListFiles returns all files changed in the pull request, auto-paginating.
func (s *PullsScope) ListFiles(ctx context.Context, number int) ([]PullRequestFile, error) {
	var all []PullRequestFile
	page := 1
	perPage := 100

	for {
		u := fmt.Sprintf("%s/repos/%s/pulls/%d/files?per_page=%d&page=%d",
			s.repo.client.baseURL, s.repo.fullName, number, perPage, page)

		var files []PullRequestFile
		if err := s.repo.client.doJSON(ctx, "GET", u, "list pull files", nil, &files); err != nil {
			return nil, err
		}
		all = append(all, files...)
		if len(files) < perPage {
			break
		}
		page++
	}
	return all, nil
}

// Create opens a new pull request.
func (s *PullsScope) Create(ctx context.Context, pr NewPullRequest) (*PullRequestResource, error) {
	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, fmt.Errorf("create pull: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/pulls", s.repo.client.baseURL, s.repo.fullName)

	var created PullRequestResource
	if err := s.repo.client.doJSON(ctx, "POST", u, "create pull", bytes.NewReader(payload), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateComment posts a comment on the pull request (via the issues endpoint,
// which is where PR conversation comments live).
func (s *PullsScope) CreateComment(ctx context.Context, number int, body string) (*IssueComment, error) {
	payload, err := json.Marshal(IssueComment{Body: body})
	if err != nil {
		return nil, fmt.Errorf("create comment: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/issues/%d/comments",
		s.repo.client.baseURL, s.repo.fullName, number)

	var created IssueComment
	if err := s.repo.client.doJSON(ctx, "POST", u, "create comment", bytes.NewReader(payload), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AddLabels attaches labels to the pull request (via the issues endpoint).
func (s *PullsScope) AddLabels(ctx context.Context, number int, labels []string) error {
	payload, err := json.Marshal(map[string][]string{"labels": labels})
	if err != nil {
		return fmt.Errorf("add labels: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/issues/%d/labels",
		s.repo.client.baseURL, s.repo.fullName, number)

	return s.repo.client.doJSON(ctx, "POST", u, "add labels", bytes.NewReader(payload), nil)
}

// WithState filters pull requests by state ("open", "closed", "all").
func WithState(state string) ListPullsOption {
	return func(p url.Values) { p.Set("state", state) }
}

// WithBase filters pull requests by base branch.
func WithBase(branch string) ListPullsOption {
	return func(p url.Values) { p.Set("base", branch) }
}

// WithPullPerPage sets the page size for PR listing.
func WithPullPerPage(n int) ListPullsOption {
	return func(p url.Values) { p.Set("per_page", strconv.Itoa(n)) }
}

// WithPullPage sets the page number (1-based) for PR listing.
func WithPullPage(n int) ListPullsOption {
	return func(p url.Values) { p.Set("page", strconv.Itoa(n)) }
}
