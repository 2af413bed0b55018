package gh

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CommitsScope provides read operations on commits.
type CommitsScope struct {
	repo *RepoScope
}

// Get returns a single commit by ref (SHA, branch, or tag).
func (s *CommitsScope) Get(ctx context.Context, ref string) (*CommitResource, error) {
	u := fmt.Sprintf("%s/repos/%s/commits/%s",
		s.repo.client.baseURL, s.repo.fullName, url.PathEscape(ref))

	var commit CommitResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "get commit", nil, &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}

// ListCommitsOption configures filter and pagination for commit listing.
type ListCommitsOption func(params url.Values)

// List returns commits matching the given filters.
func (s *CommitsScope) List(ctx context.Context, opts ...ListCommitsOption) ([]CommitResource, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}

	u := fmt.Sprintf("%s/repos/%s/commits?%s",
		s.repo.client.baseURL, s.repo.fullName, params.Encode())

	var commits []CommitResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "list commits", nil, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// WithCommitSHA restricts the listing to the history reachable from the ref.
func WithCommitSHA(ref string) ListCommitsOption {
	return func(p url.Values) { p.Set("sha", ref) }
}

// WithCommitPath restricts the listing to commits touching the path.
func WithCommitPath(path string) ListCommitsOption {
	return func(p url.Values) { p.Set("path", path) }
}

// WithCommitPerPage sets the page size for commit listing.
func WithCommitPerPage(n int) ListCommitsOption {
	return func(p url.Values) { p.Set("per_page", strconv.Itoa(n)) }
}
