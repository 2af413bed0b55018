package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// GitScope provides low-level git object operations (refs, trees, commits).
type GitScope struct {
	repo *RepoScope
}

// GetRef returns the reference with the given fully-qualified-without-refs
// name, e.g. "heads/release-1.6". A missing ref is an *APIError matching
// IsNotFound.
func (s *GitScope) GetRef(ctx context.Context, ref string) (*RefResource, error) {
	u := fmt.Sprintf("%s/repos/%s/git/ref/%s",
		s.repo.client.baseURL, s.repo.fullName, ref)

	var r RefResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "get ref", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetCommit returns the low-level git commit object, including its tree
// pointer. Unlike CommitsScope.Get this resolves only by SHA.
func (s *GitScope) GetCommit(ctx context.Context, sha string) (*GitCommitResource, error) {
	u := fmt.Sprintf("%s/repos/%s/git/commits/%s",
		s.repo.client.baseURL, s.repo.fullName, sha)

	var commit GitCommitResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "get git commit", nil, &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}

// CreateRef creates a new reference. ref must be fully qualified, e.g.
// "refs/heads/workspace-update/release-1-6/foo".
func (s *GitScope) CreateRef(ctx context.Context, ref, sha string) (*RefResource, error) {
	payload, err := json.Marshal(map[string]string{"ref": ref, "sha": sha})
	if err != nil {
		return nil, fmt.Errorf("create ref: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/git/refs", s.repo.client.baseURL, s.repo.fullName)

	var created RefResource
	if err := s.repo.client.doJSON(ctx, "POST", u, "create ref", bytes.NewReader(payload), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateTree creates a tree on top of baseTree with the given entries.
func (s *GitScope) CreateTree(ctx context.Context, baseTree string, entries []TreeEntry) (*TreeResource, error) {
	body := map[string]any{"tree": entries}
	if baseTree != "" {
		body["base_tree"] = baseTree
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("create tree: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/git/trees", s.repo.client.baseURL, s.repo.fullName)

	var tree TreeResource
	if err := s.repo.client.doJSON(ctx, "POST", u, "create tree", bytes.NewReader(payload), &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// CreateCommit creates a commit pointing at tree with the given parents.
func (s *GitScope) CreateCommit(ctx context.Context, message, tree string, parents []string) (*GitCommitResource, error) {
	payload, err := json.Marshal(map[string]any{
		"message": message,
		"tree":    tree,
		"parents": parents,
	})
	if err != nil {
		return nil, fmt.Errorf("create commit: marshal: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/git/commits", s.repo.client.baseURL, s.repo.fullName)

	var commit GitCommitResource
	if err := s.repo.client.doJSON(ctx, "POST", u, "create commit", bytes.NewReader(payload), &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}
