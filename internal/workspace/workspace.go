// Package workspace discovers workspace directories in the overlay repository
// and reads their local metadata files. Missing files are treated as absence,
// not as errors; malformed content is logged and treated the same way.
package workspace

// Source is the upstream pointer parsed from a workspace's source.json.
type Source struct {
	// Repo is the upstream repository URL.
	Repo string `json:"repo"`
	// Ref is the pinned commit reference in the upstream repository.
	Ref string `json:"repo-ref"`
	// Flat marks a repository with root-level plugins instead of a
	// workspace-based monorepo layout.
	Flat bool `json:"repo-flat"`
	// BackstageVersion is the fallback framework version indicator.
	BackstageVersion string `json:"repo-backstage-version,omitempty"`
}

// RepoFullName returns the "owner/name" part of the upstream URL, or "" when
// the URL is not a github.com repository.
func (s *Source) RepoFullName() string {
	const prefix = "https://github.com/"
	if s == nil || len(s.Repo) <= len(prefix) || s.Repo[:len(prefix)] != prefix {
		return ""
	}
	name := s.Repo[len(prefix):]
	for len(name) > 0 && name[len(name)-1] == '/' {
		name = name[:len(name)-1]
	}
	return name
}

// FileCounts holds recursive file counts for the four fixed category
// directories a workspace may carry.
type FileCounts struct {
	Metadata int // metadata/: plugin metadata files
	Overlays int // plugins/: per-plugin source overlays
	Patches  int // patches/: line-level diffs applied before build
	Tests    int // tests/: workspace-specific test files
}

// Metadata is everything known about a workspace from the local checkout,
// before any remote enrichment.
type Metadata struct {
	Name             string
	Source           *Source // nil when source.json is missing or malformed
	Plugins          []string
	BackstageVersion string
	Counts           FileCounts
}
