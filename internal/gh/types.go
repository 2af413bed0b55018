package gh

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// --- Response types (hand-written, aligned with the REST v3 schemas) ---

// CommitResource represents a commit as returned by /repos/{repo}/commits/{ref}.
type CommitResource struct {
	SHA     string       `json:"sha"`
	Commit  CommitDetail `json:"commit"`
	HTMLURL string       `json:"html_url,omitempty"`
}

// CommitDetail is the nested git-level commit data.
type CommitDetail struct {
	Message string       `json:"message,omitempty"`
	Author  *CommitActor `json:"author,omitempty"`
}

// CommitActor is the author/committer identity on a git commit.
type CommitActor struct {
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
	Date  time.Time `json:"date,omitempty"`
}

// ShortSHA returns the 7-character abbreviation of the commit SHA.
func (c *CommitResource) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Subject returns the first line of the commit message.
func (c *CommitResource) Subject() string {
	msg := c.Commit.Message
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}

// ContentResource represents a file returned by /repos/{repo}/contents/{path}.
type ContentResource struct {
	Type     string `json:"type,omitempty"`
	Name     string `json:"name,omitempty"`
	Path     string `json:"path,omitempty"`
	SHA      string `json:"sha,omitempty"`
	Size     int    `json:"size,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Decode returns the file bytes, reversing the base64 transport encoding.
func (c *ContentResource) Decode() ([]byte, error) {
	switch c.Encoding {
	case "base64":
		// GitHub wraps base64 content with newlines.
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(c.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("decode content %s: %w", c.Path, err)
		}
		return data, nil
	case "", "none":
		return []byte(c.Content), nil
	default:
		return nil, fmt.Errorf("decode content %s: unsupported encoding %q", c.Path, c.Encoding)
	}
}

// PullRequestResource represents a pull request summary.
type PullRequestResource struct {
	Number  int             `json:"number"`
	Title   string          `json:"title,omitempty"`
	State   string          `json:"state,omitempty"`
	HTMLURL string          `json:"html_url,omitempty"`
	Labels  []LabelResource `json:"labels,omitempty"`
	Head    *BranchRef      `json:"head,omitempty"`
	Base    *BranchRef      `json:"base,omitempty"`
}

// HasLabel reports whether the PR carries a label with the given name.
func (p *PullRequestResource) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LabelResource is an issue/PR label.
type LabelResource struct {
	Name string `json:"name"`
}

// BranchRef is the head/base side of a pull request.
type BranchRef struct {
	Ref string `json:"ref,omitempty"`
	SHA string `json:"sha,omitempty"`
}

// PullRequestFile is one changed file in a pull request.
type PullRequestFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status,omitempty"`
}

// NewPullRequest is the request body for creating a pull request.
type NewPullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body,omitempty"`
}

// IssueComment is a comment on an issue or pull request.
type IssueComment struct {
	ID      int64  `json:"id,omitempty"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url,omitempty"`
}

// RefResource represents a git reference (/repos/{repo}/git/ref/...).
type RefResource struct {
	Ref    string     `json:"ref"`
	Object *GitObject `json:"object,omitempty"`
}

// GitObject is the target of a reference.
type GitObject struct {
	Type string `json:"type,omitempty"`
	SHA  string `json:"sha,omitempty"`
}

// TreeEntry is one blob/tree entry when creating a tree.
type TreeEntry struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

// TreeResource is the response for tree creation/retrieval.
type TreeResource struct {
	SHA  string      `json:"sha"`
	Tree []TreeEntry `json:"tree,omitempty"`
}

// GitCommitResource is a low-level git commit (/repos/{repo}/git/commits).
type GitCommitResource struct {
	SHA     string      `json:"sha"`
	Message string      `json:"message,omitempty"`
	Tree    *GitObject  `json:"tree,omitempty"`
	Parents []GitObject `json:"parents,omitempty"`
}

// CommitStatus is the request body for creating a commit status.
type CommitStatus struct {
	State       string `json:"state"` // error, failure, pending, success
	Context     string `json:"context,omitempty"`
	Description string `json:"description,omitempty"`
	TargetURL   string `json:"target_url,omitempty"`
}

// WorkflowRun represents an Actions workflow run.
type WorkflowRun struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	HeadSHA    string `json:"head_sha,omitempty"`
	Status     string `json:"status,omitempty"`
	Conclusion string `json:"conclusion,omitempty"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// WorkflowJob is one job within a workflow run.
type WorkflowJob struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status,omitempty"`
	Conclusion string `json:"conclusion,omitempty"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// PagedJobs is the paginated response for job listing.
type PagedJobs struct {
	TotalCount int           `json:"total_count"`
	Jobs       []WorkflowJob `json:"jobs"`
}

// ErrorResponse is the standard GitHub error body.
type ErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}
