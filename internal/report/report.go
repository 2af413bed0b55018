// Package report builds the workspace-status wiki page: it aggregates local
// workspace metadata, enriches it from the GitHub API, classifies plugin
// support tiers, and renders one Markdown document.
//
// Enrichment never aborts the whole report: each field independently
// degrades to a placeholder when its upstream data is unreachable, so a
// single broken workspace still leaves the rest of the page intact.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"overlayhub/internal/gh"
	"overlayhub/internal/logging"
	"overlayhub/internal/support"
	"overlayhub/internal/workspace"
)

// Placeholder marks enrichment fields whose upstream data was unreachable.
const Placeholder = "N/A"

// PluginInfo is one plugin row in a workspace record.
type PluginInfo struct {
	Path  string
	Label string // "name@version" from the upstream manifest, or the raw path
	Tier  support.Tier
}

// PRRef points at one pending update PR.
type PRRef struct {
	Number int
	URL    string
}

// Record is the fully enriched view of one workspace, ready to render.
type Record struct {
	Name             string
	Source           *workspace.Source
	CommitShort      string
	CommitSubject    string
	CommitDate       string
	BackstageVersion string
	Plugins          []PluginInfo
	Counts           workspace.FileCounts
	PendingPRs       []PRRef
}

// Generator wires the full report pipeline for one branch.
type Generator struct {
	Client        *gh.Client
	Repo          string // overlay repository, "owner/name"
	Branch        string // target branch the report describes
	Labels        []string
	WorkspacesDir string
	ListsDir      string
	OutputDir     string
	Clock         func() time.Time
}

// Run generates the wiki page and returns the path it was written to.
// Per-workspace failures are logged and degrade to placeholders; only
// filesystem problems with the output itself are fatal.
func (g *Generator) Run(ctx context.Context) (string, error) {
	logger := logging.New("report")
	clock := g.Clock
	if clock == nil {
		clock = time.Now
	}

	lists, err := support.LoadLists(g.ListsDir)
	if err != nil {
		return "", fmt.Errorf("load support lists: %w", err)
	}

	names := workspace.List(g.WorkspacesDir)
	logger.Info("generating report", "branch", g.Branch, "workspaces", len(names))

	enricher := NewEnricher(g.Client, g.Repo, g.Branch, g.Labels)
	pending := enricher.FetchPending(ctx)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		md := workspace.ReadMetadata(g.WorkspacesDir, name)
		records = append(records, enricher.Enrich(ctx, md, lists, pending))
	}

	content := Render(g.Branch, records, clock().UTC())

	outPath := filepath.Join(g.OutputDir, OutputFilename(g.Branch))
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", outPath, "workspaces", len(records))
	return outPath, nil
}

// OutputFilename names the generated page after the branch, with slashes
// replaced so the name stays a single path element.
func OutputFilename(branch string) string {
	return strings.ReplaceAll(branch, "/", "-") + ".md"
}
