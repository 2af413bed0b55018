package report

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"overlayhub/internal/gh"
	"overlayhub/internal/support"
	"overlayhub/internal/workspace"
)

var testLabels = []string{"workspace-update", "automated"}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func newTestEnricher(t *testing.T, handler http.HandlerFunc) *Enricher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := gh.New(server.URL, "test-token", gh.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}
	return NewEnricher(client, "acme/overlays", "release-1.6", testLabels)
}

func TestEnrich_FullyResolved(t *testing.T) {
	e := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/upstream/commits/abc1234def":
			json.NewEncoder(w).Encode(gh.CommitResource{
				SHA: "abc1234def5678",
				Commit: gh.CommitDetail{
					Message: "feat: new widget\n\nbody",
					Author:  &gh.CommitActor{Date: time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)},
				},
			})
		case "/repos/acme/upstream/contents/plugins/a/package.json":
			json.NewEncoder(w).Encode(gh.ContentResource{
				Encoding: "base64",
				Content:  b64(`{"name": "@acme/plugin-a", "version": "1.2.3"}`),
			})
		case "/repos/acme/upstream/contents/backstage.json":
			json.NewEncoder(w).Encode(gh.ContentResource{
				Encoding: "base64",
				Content:  b64(`{"version": "1.39.1"}`),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(gh.ErrorResponse{Message: "Not Found"})
		}
	})

	md := &workspace.Metadata{
		Name:    "foo",
		Source:  &workspace.Source{Repo: "https://github.com/acme/upstream", Ref: "abc1234def"},
		Plugins: []string{"plugins/a", "plugins/missing"},
	}
	lists := support.NewLists([]string{"foo/plugins/a"}, nil, nil)

	rec := e.Enrich(context.Background(), md, lists, &PendingIndex{})

	if rec.CommitShort != "abc1234" || rec.CommitSubject != "feat: new widget" {
		t.Errorf("commit fields: %+v", rec)
	}
	if rec.CommitDate != "2026-03-14 09:26 UTC" {
		t.Errorf("commit date: got %q", rec.CommitDate)
	}
	if rec.BackstageVersion != "1.39.1" {
		t.Errorf("backstage version: got %q", rec.BackstageVersion)
	}

	want := []PluginInfo{
		{Path: "plugins/a", Label: "@acme/plugin-a@1.2.3", Tier: support.Supported},
		{Path: "plugins/missing", Label: "plugins/missing", Tier: support.Unknown},
	}
	if diff := cmp.Diff(want, rec.Plugins); diff != "" {
		t.Errorf("plugins mismatch (-want +got):\n%s", diff)
	}
}

func TestEnrich_FetchFailureDegradesToPlaceholders(t *testing.T) {
	e := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(gh.ErrorResponse{Message: "boom"})
	})

	md := &workspace.Metadata{
		Name:    "foo",
		Source:  &workspace.Source{Repo: "https://github.com/acme/upstream", Ref: "abc1234def"},
		Plugins: []string{"plugins/a"},
	}

	rec := e.Enrich(context.Background(), md, support.NewLists(nil, nil, nil), &PendingIndex{})

	// Short hash still comes from the local pin.
	if rec.CommitShort != "abc1234" {
		t.Errorf("commit short: got %q", rec.CommitShort)
	}
	if rec.CommitSubject != Placeholder || rec.CommitDate != Placeholder {
		t.Errorf("expected placeholders, got %+v", rec)
	}
	if rec.Plugins[0].Label != "plugins/a" {
		t.Errorf("expected raw path label, got %q", rec.Plugins[0].Label)
	}
}

func TestEnrich_NoSourcePointer(t *testing.T) {
	e := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call: %s", r.URL.Path)
	})

	md := &workspace.Metadata{Name: "bare", Plugins: []string{"plugins/x"}}
	rec := e.Enrich(context.Background(), md, support.NewLists(nil, nil, nil), &PendingIndex{})

	if rec.CommitShort != Placeholder || rec.CommitSubject != Placeholder || rec.CommitDate != Placeholder {
		t.Errorf("expected placeholders without source, got %+v", rec)
	}
	if rec.Plugins[0].Label != "plugins/x" {
		t.Errorf("expected raw path label, got %q", rec.Plugins[0].Label)
	}
}

func TestFetchPending_FiltersByLabelAndPath(t *testing.T) {
	e := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/overlays/pulls":
			json.NewEncoder(w).Encode([]gh.PullRequestResource{
				{Number: 1, HTMLURL: "https://example.com/pull/1", Labels: []gh.LabelResource{{Name: "workspace-update"}}},
				{Number: 2, HTMLURL: "https://example.com/pull/2", Labels: []gh.LabelResource{{Name: "docs"}}},
				{Number: 3, HTMLURL: "https://example.com/pull/3", Labels: []gh.LabelResource{{Name: "automated"}}},
			})
		case "/repos/acme/overlays/pulls/1/files":
			json.NewEncoder(w).Encode([]gh.PullRequestFile{{Filename: "workspaces/foo/source-commit"}})
		case "/repos/acme/overlays/pulls/3/files":
			json.NewEncoder(w).Encode([]gh.PullRequestFile{{Filename: "workspaces/bar/plugins-list.yaml"}})
		default:
			t.Errorf("unexpected API call: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	idx := e.FetchPending(context.Background())

	foo := idx.For("foo")
	if len(foo) != 1 || foo[0].Number != 1 {
		t.Errorf("foo pending: got %+v", foo)
	}
	// PR 2 touches nothing relevant and lacks the labels; PR 3 touches bar.
	if got := idx.For("bar"); len(got) != 1 || got[0].Number != 3 {
		t.Errorf("bar pending: got %+v", got)
	}
	if got := idx.For("baz"); len(got) != 0 {
		t.Errorf("baz pending: got %+v", got)
	}
}

func TestFetchPending_ListFailureYieldsEmptyIndex(t *testing.T) {
	e := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(gh.ErrorResponse{Message: "rate limited"})
	})

	idx := e.FetchPending(context.Background())
	if got := idx.For("foo"); len(got) != 0 {
		t.Errorf("expected empty index, got %+v", got)
	}
}
