package gh

import (
	"context"
	"fmt"
	"net/url"
)

// ContentsScope provides read access to repository file contents.
type ContentsScope struct {
	repo *RepoScope
}

// Get returns the file at path as of the given ref (branch, tag, or SHA).
// An empty ref means the repository's default branch. A 404 is returned as
// an *APIError matching IsNotFound.
func (s *ContentsScope) Get(ctx context.Context, path, ref string) (*ContentResource, error) {
	u := fmt.Sprintf("%s/repos/%s/contents/%s",
		s.repo.client.baseURL, s.repo.fullName, escapePath(path))
	if ref != "" {
		u += "?ref=" + url.QueryEscape(ref)
	}

	var content ContentResource
	if err := s.repo.client.doJSON(ctx, "GET", u, "get content", nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// GetString fetches and decodes the file at path@ref into a string.
func (s *ContentsScope) GetString(ctx context.Context, path, ref string) (string, error) {
	content, err := s.Get(ctx, path, ref)
	if err != nil {
		return "", err
	}
	data, err := content.Decode()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// escapePath percent-encodes each path segment while keeping the slashes.
func escapePath(p string) string {
	segments := []byte(nil)
	for i, seg := range splitSlash(p) {
		if i > 0 {
			segments = append(segments, '/')
		}
		segments = append(segments, url.PathEscape(seg)...)
	}
	return string(segments)
}

func splitSlash(p string) []string {
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[start:i])
			start = i + 1
		}
	}
	return append(out, p[start:])
}
