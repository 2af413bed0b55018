package report

import (
	"fmt"
	"strings"
	"time"

	"overlayhub/internal/display"
	"overlayhub/internal/format"
)

// Render produces the full wiki page. Given identical records it is
// byte-identical across runs; only the Last Updated line carries now.
func Render(branch string, records []Record, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Workspace Status: `%s`\n\n", branch)
	fmt.Fprintf(&b, "**Last Updated:** %s\n\n", now.Format(commitDateLayout))
	fmt.Fprintf(&b, "**Total Workspaces:** %d\n\n", len(records))
	b.WriteString("---\n\n")

	tb := format.NewTable()
	tb.Header("Workspace", "Source Commit", "Backstage", "Plugins")
	for i := range records {
		rec := &records[i]
		tb.Row(workspaceCell(rec), sourceCell(rec), backstageCell(rec), pluginsCell(rec))
	}
	b.WriteString(tb.String())
	b.WriteString("\n")

	return b.String()
}

// workspaceCell packs the independent per-workspace signals into one cell:
// structural layout, patch/overlay presence, metadata presence, and pending
// PRs, stacked as inline markers with hover tooltips.
func workspaceCell(rec *Record) string {
	flat := rec.Source != nil && rec.Source.Flat

	markers := []string{display.StructureMarker(flat)}
	if rec.Counts.Patches > 0 {
		markers = append(markers, display.PatchesMarker(rec.Counts.Patches))
	}
	if rec.Counts.Overlays > 0 {
		markers = append(markers, display.OverlaysMarker(rec.Counts.Overlays))
	}
	markers = append(markers, display.MetadataMarker(rec.Counts.Metadata > 0))
	if len(rec.PendingPRs) > 0 {
		markers = append(markers, display.PendingPRMarker(prLinks(rec.PendingPRs)))
	}

	return fmt.Sprintf("**%s**<br/>%s", rec.Name, strings.Join(markers, " "))
}

func prLinks(refs []PRRef) string {
	links := make([]string, len(refs))
	for i, ref := range refs {
		links[i] = fmt.Sprintf("[#%d](%s)", ref.Number, ref.URL)
	}
	return strings.Join(links, ", ")
}

func sourceCell(rec *Record) string {
	if rec.Source == nil || rec.Source.Repo == "" {
		return Placeholder
	}

	lines := []string{}
	if full := rec.Source.RepoFullName(); full != "" {
		lines = append(lines, fmt.Sprintf("[%s](%s)", full, rec.Source.Repo))
	} else {
		lines = append(lines, rec.Source.Repo)
	}

	if rec.Source.Ref != "" {
		commitLine := fmt.Sprintf("[`%s`](%s/commit/%s)", rec.CommitShort, strings.TrimSuffix(rec.Source.Repo, "/"), rec.Source.Ref)
		if rec.CommitSubject != Placeholder {
			commitLine += " - " + rec.CommitSubject
		}
		lines = append(lines, commitLine)
		lines = append(lines, rec.CommitDate)
	} else {
		lines = append(lines, Placeholder)
	}

	return strings.Join(lines, "<br/>")
}

func backstageCell(rec *Record) string {
	if rec.BackstageVersion == "" {
		return Placeholder
	}
	return "`" + rec.BackstageVersion + "`"
}

// pluginsCell stacks one marker+label pair per plugin line.
func pluginsCell(rec *Record) string {
	if len(rec.Plugins) == 0 {
		return "*none*"
	}
	lines := make([]string, len(rec.Plugins))
	for i, p := range rec.Plugins {
		lines[i] = fmt.Sprintf("%s `%s`", display.TierMarker(p.Tier), p.Label)
	}
	return strings.Join(lines, "<br/>")
}
