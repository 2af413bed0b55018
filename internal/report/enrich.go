package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"overlayhub/internal/gh"
	"overlayhub/internal/logging"
	"overlayhub/internal/support"
	"overlayhub/internal/workspace"
)

// commitDateLayout is minute-precision UTC, matching the wiki page.
const commitDateLayout = "2006-01-02 15:04 UTC"

// Enricher resolves remote metadata for workspace records. Every fetch is
// attempted exactly once; failures are logged and degrade to placeholders.
type Enricher struct {
	client *gh.Client
	repo   string // overlay repository, "owner/name"
	branch string
	labels []string
	logger *slog.Logger
}

// NewEnricher returns an Enricher for the overlay repository and target
// branch. labels are the PR labels that mark automation-driven updates.
func NewEnricher(client *gh.Client, repo, branch string, labels []string) *Enricher {
	return &Enricher{
		client: client,
		repo:   repo,
		branch: branch,
		labels: labels,
		logger: logging.New("enrich"),
	}
}

// PendingIndex is the one-shot snapshot of open update PRs on the target
// branch, queried once per run and consulted per workspace.
type PendingIndex struct {
	entries []pendingEntry
}

type pendingEntry struct {
	pr    gh.PullRequestResource
	files []gh.PullRequestFile
}

// For returns the PRs pending for the named workspace: PRs that touch a file
// under the workspace's path prefix and carry one of the required labels.
// The label requirement keeps unrelated PRs that happen to touch nearby
// paths out of the report.
func (idx *PendingIndex) For(workspaceName string) []PRRef {
	if idx == nil {
		return nil
	}
	prefix := "workspaces/" + workspaceName + "/"
	var refs []PRRef
	for _, e := range idx.entries {
		for _, f := range e.files {
			if strings.HasPrefix(f.Filename, prefix) {
				refs = append(refs, PRRef{Number: e.pr.Number, URL: e.pr.HTMLURL})
				break
			}
		}
	}
	return refs
}

// FetchPending lists the open PRs against the target branch and their
// changed files, keeping only PRs with a required label. Any failure is
// logged and yields an empty index: the report then simply shows no pending
// updates rather than failing.
func (e *Enricher) FetchPending(ctx context.Context) *PendingIndex {
	prs, err := e.client.Repo(e.repo).Pulls().ListAll(ctx,
		gh.WithState("open"), gh.WithBase(e.branch))
	if err != nil {
		e.logger.Warn("list open PRs", "repo", e.repo, "base", e.branch, "error", err)
		return &PendingIndex{}
	}

	idx := &PendingIndex{}
	for _, pr := range prs {
		if !e.hasRequiredLabel(&pr) {
			continue
		}
		files, err := e.client.Repo(e.repo).Pulls().ListFiles(ctx, pr.Number)
		if err != nil {
			e.logger.Warn("list PR files", "pr", pr.Number, "error", err)
			continue
		}
		idx.entries = append(idx.entries, pendingEntry{pr: pr, files: files})
	}
	return idx
}

func (e *Enricher) hasRequiredLabel(pr *gh.PullRequestResource) bool {
	for _, label := range e.labels {
		if pr.HasLabel(label) {
			return true
		}
	}
	return false
}

// Enrich turns local workspace metadata into a fully resolved record.
func (e *Enricher) Enrich(ctx context.Context, md *workspace.Metadata, lists support.Lists, pending *PendingIndex) Record {
	rec := Record{
		Name:             md.Name,
		Source:           md.Source,
		CommitShort:      Placeholder,
		CommitSubject:    Placeholder,
		CommitDate:       Placeholder,
		BackstageVersion: md.BackstageVersion,
		Counts:           md.Counts,
		PendingPRs:       pending.For(md.Name),
	}

	upstream := md.Source.RepoFullName()
	ref := ""
	if md.Source != nil {
		ref = md.Source.Ref
	}

	if ref != "" {
		// The local pin is enough for the short hash even when the
		// upstream fetch fails.
		rec.CommitShort = shortRef(ref)
	}

	if upstream != "" && ref != "" {
		if commit, err := e.client.Repo(upstream).Commits().Get(ctx, ref); err != nil {
			e.logger.Warn("fetch commit", "workspace", md.Name, "repo", upstream, "ref", ref, "error", err)
		} else {
			rec.CommitShort = commit.ShortSHA()
			rec.CommitSubject = commit.Subject()
			if commit.Commit.Author != nil && !commit.Commit.Author.Date.IsZero() {
				rec.CommitDate = commit.Commit.Author.Date.UTC().Format(commitDateLayout)
			}
		}

		if rec.BackstageVersion == "" {
			rec.BackstageVersion = e.fetchBackstageVersion(ctx, upstream, ref)
		}
	}

	rec.Plugins = make([]PluginInfo, 0, len(md.Plugins))
	for _, p := range md.Plugins {
		rec.Plugins = append(rec.Plugins, PluginInfo{
			Path:  p,
			Label: e.pluginLabel(ctx, upstream, ref, p),
			Tier:  lists.Classify(md.Name, p),
		})
	}

	return rec
}

// pluginLabel resolves "name@version" from the plugin's package.json at the
// pinned commit, falling back to the raw plugin path.
func (e *Enricher) pluginLabel(ctx context.Context, upstream, ref, pluginPath string) string {
	if upstream == "" || ref == "" {
		return pluginPath
	}
	manifestPath := path.Join(pluginPath, "package.json")
	raw, err := e.client.Repo(upstream).Contents().GetString(ctx, manifestPath, ref)
	if err != nil {
		if !gh.IsNotFound(err) {
			e.logger.Warn("fetch plugin manifest", "repo", upstream, "path", manifestPath, "error", err)
		}
		return pluginPath
	}

	var manifest struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(raw), &manifest); err != nil || manifest.Name == "" {
		e.logger.Warn("parse plugin manifest", "repo", upstream, "path", manifestPath, "error", err)
		return pluginPath
	}
	if manifest.Version == "" {
		return manifest.Name
	}
	return manifest.Name + "@" + manifest.Version
}

// fetchBackstageVersion reads the upstream backstage.json at the pinned
// commit; absence or failure degrades to empty.
func (e *Enricher) fetchBackstageVersion(ctx context.Context, upstream, ref string) string {
	raw, err := e.client.Repo(upstream).Contents().GetString(ctx, "backstage.json", ref)
	if err != nil {
		if !gh.IsNotFound(err) {
			e.logger.Warn("fetch backstage.json", "repo", upstream, "ref", ref, "error", err)
		}
		return ""
	}
	var bs struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(raw), &bs); err != nil {
		return ""
	}
	return bs.Version
}

func shortRef(ref string) string {
	if len(ref) > 7 {
		return ref[:7]
	}
	return ref
}
