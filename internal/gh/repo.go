package gh

// RepoScope provides operations scoped to a single "owner/name" repository.
type RepoScope struct {
	client   *Client
	fullName string
}

// FullName returns the "owner/name" identifier of the scope.
func (r *RepoScope) FullName() string { return r.fullName }

// Contents returns the scope for file-content operations.
func (r *RepoScope) Contents() *ContentsScope { return &ContentsScope{repo: r} }

// Commits returns the scope for commit operations.
func (r *RepoScope) Commits() *CommitsScope { return &CommitsScope{repo: r} }

// Pulls returns the scope for pull-request operations.
func (r *RepoScope) Pulls() *PullsScope { return &PullsScope{repo: r} }

// Git returns the scope for low-level git object operations.
func (r *RepoScope) Git() *GitScope { return &GitScope{repo: r} }

// Statuses returns the scope for commit-status operations.
func (r *RepoScope) Statuses() *StatusesScope { return &StatusesScope{repo: r} }

// Actions returns the scope for workflow-run operations.
func (r *RepoScope) Actions() *ActionsScope { return &ActionsScope{repo: r} }
