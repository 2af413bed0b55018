package report

import (
	"strings"
	"testing"
	"time"

	"overlayhub/internal/support"
	"overlayhub/internal/workspace"
)

func TestRender_SingleWorkspaceRow(t *testing.T) {
	// Workspace "foo": no patches, no overlays, metadata present, no
	// pending PRs, two plugins (one Supported, one Unknown).
	rec := Record{
		Name: "foo",
		Source: &workspace.Source{
			Repo: "https://github.com/acme/upstream",
			Ref:  "abc1234def",
		},
		CommitShort:   "abc1234",
		CommitSubject: "chore: bump versions",
		CommitDate:    "2026-03-14 09:26 UTC",
		Counts:        workspace.FileCounts{Metadata: 3},
		Plugins: []PluginInfo{
			{Path: "plugins/a", Label: "@acme/plugin-a@1.2.3", Tier: support.Supported},
			{Path: "plugins/b", Label: "plugins/b", Tier: support.Unknown},
		},
	}

	out := Render("release-1.6", []Record{rec}, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	if !strings.Contains(out, "# Workspace Status: `release-1.6`") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "**Total Workspaces:** 1") {
		t.Errorf("missing count:\n%s", out)
	}

	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "**foo**") {
			row = line
			break
		}
	}
	if row == "" {
		t.Fatalf("workspace row not found:\n%s", out)
	}

	// Exactly one structural icon, monorepo form.
	if got := strings.Count(row, "🗂️"); got != 1 {
		t.Errorf("structural icons: got %d, want 1\nrow: %s", got, row)
	}
	// One green metadata marker, no patch/overlay/pending markers.
	if got := strings.Count(row, "🟢"); got != 1 {
		t.Errorf("metadata markers: got %d, want 1\nrow: %s", got, row)
	}
	for _, absent := range []string{"🩹", "📋", "⚠️"} {
		if strings.Contains(row, absent) {
			t.Errorf("unexpected marker %s in row: %s", absent, row)
		}
	}
	// Two plugin lines, each prefixed with its tier icon.
	if got := strings.Count(row, "✅"); got != 1 {
		t.Errorf("supported icons: got %d, want 1\nrow: %s", got, row)
	}
	if got := strings.Count(row, "❓"); got != 1 {
		t.Errorf("unknown icons: got %d, want 1\nrow: %s", got, row)
	}
	if !strings.Contains(row, "`@acme/plugin-a@1.2.3`") || !strings.Contains(row, "`plugins/b`") {
		t.Errorf("plugin labels missing: %s", row)
	}
	// Commit line joins the linked hash and subject with a plain hyphen.
	if !strings.Contains(row, ") - chore: bump versions") {
		t.Errorf("commit line separator missing: %s", row)
	}
}

func TestRender_RoundTripStableExceptTimestamp(t *testing.T) {
	recs := []Record{
		{Name: "foo", CommitShort: Placeholder, CommitSubject: Placeholder, CommitDate: Placeholder},
		{Name: "bar", CommitShort: Placeholder, CommitSubject: Placeholder, CommitDate: Placeholder},
	}

	first := Render("main", recs, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	second := Render("main", recs, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	firstLines := strings.Split(first, "\n")
	secondLines := strings.Split(second, "\n")
	if len(firstLines) != len(secondLines) {
		t.Fatalf("line counts differ: %d vs %d", len(firstLines), len(secondLines))
	}
	for i := range firstLines {
		if strings.HasPrefix(firstLines[i], "**Last Updated:**") {
			if firstLines[i] == secondLines[i] {
				t.Error("expected Last Updated line to differ")
			}
			continue
		}
		if firstLines[i] != secondLines[i] {
			t.Errorf("line %d differs:\n%q\n%q", i, firstLines[i], secondLines[i])
		}
	}
}

func TestRender_MissingSourceUsesPlaceholders(t *testing.T) {
	recs := []Record{{
		Name:          "orphan",
		CommitShort:   Placeholder,
		CommitSubject: Placeholder,
		CommitDate:    Placeholder,
		Plugins:       []PluginInfo{{Path: "plugins/x", Label: "plugins/x", Tier: support.Unknown}},
	}}

	out := Render("main", recs, time.Now().UTC())
	if !strings.Contains(out, "N/A") {
		t.Errorf("expected N/A placeholders:\n%s", out)
	}
	if !strings.Contains(out, "`plugins/x`") {
		t.Errorf("expected raw plugin path label:\n%s", out)
	}
}

func TestRender_PendingPRMarker(t *testing.T) {
	recs := []Record{{
		Name:          "busy",
		CommitShort:   Placeholder,
		CommitSubject: Placeholder,
		CommitDate:    Placeholder,
		PendingPRs:    []PRRef{{Number: 42, URL: "https://example.com/pull/42"}},
	}}

	out := Render("main", recs, time.Now().UTC())
	if !strings.Contains(out, "⚠️") {
		t.Errorf("expected pending marker:\n%s", out)
	}
	if !strings.Contains(out, "[#42](https://example.com/pull/42)") {
		t.Errorf("expected PR link:\n%s", out)
	}
}

func TestOutputFilename(t *testing.T) {
	cases := []struct{ branch, want string }{
		{"main", "main.md"},
		{"release-1.6", "release-1.6.md"},
		{"releases/1.6", "releases-1.6.md"},
	}
	for _, c := range cases {
		if got := OutputFilename(c.branch); got != c.want {
			t.Errorf("OutputFilename(%q) = %q, want %q", c.branch, got, c.want)
		}
	}
}
