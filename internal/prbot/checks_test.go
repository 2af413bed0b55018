package prbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"overlayhub/internal/gh"
)

func newTestChecks(t *testing.T, handler http.HandlerFunc) *Checks {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := gh.New(server.URL, "test-token", gh.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}
	return NewChecks(client, "acme/overlays")
}

func TestSummarize_AllPassing(t *testing.T) {
	var status gh.CommitStatus
	var comment gh.IssueComment

	c := newTestChecks(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/overlays/actions/runs/42":
			json.NewEncoder(w).Encode(gh.WorkflowRun{
				ID: 42, Name: "ci", HeadSHA: "head0001",
				HTMLURL: "https://example.com/runs/42",
			})
		case "/repos/acme/overlays/actions/runs/42/jobs":
			json.NewEncoder(w).Encode(gh.PagedJobs{TotalCount: 2, Jobs: []gh.WorkflowJob{
				{Name: "lint", Conclusion: "success", HTMLURL: "https://example.com/jobs/1"},
				{Name: "test", Conclusion: "success", HTMLURL: "https://example.com/jobs/2"},
			}})
		case "/repos/acme/overlays/statuses/head0001":
			json.NewDecoder(r.Body).Decode(&status)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("{}"))
		case "/repos/acme/overlays/issues/7/comments":
			json.NewDecoder(r.Body).Decode(&comment)
			json.NewEncoder(w).Encode(gh.IssueComment{ID: 1})
		default:
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})

	if err := c.Summarize(context.Background(), 42, 7); err != nil {
		t.Fatal(err)
	}

	if status.State != "success" || status.Context != "overlayhub/checks" {
		t.Errorf("status: %+v", status)
	}
	if status.TargetURL != "https://example.com/runs/42" {
		t.Errorf("status target: %q", status.TargetURL)
	}
	if !strings.Contains(comment.Body, "All 2 jobs passed") {
		t.Errorf("comment: %q", comment.Body)
	}
	for _, job := range []string{"lint", "test"} {
		if !strings.Contains(comment.Body, job) {
			t.Errorf("comment missing job %q: %q", job, comment.Body)
		}
	}
}

func TestSummarize_FailureMarksStatusAndComment(t *testing.T) {
	var status gh.CommitStatus
	var comment gh.IssueComment

	c := newTestChecks(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/overlays/actions/runs/42":
			json.NewEncoder(w).Encode(gh.WorkflowRun{ID: 42, Name: "ci", HeadSHA: "head0001"})
		case "/repos/acme/overlays/actions/runs/42/jobs":
			json.NewEncoder(w).Encode(gh.PagedJobs{TotalCount: 3, Jobs: []gh.WorkflowJob{
				{Name: "lint", Conclusion: "success"},
				{Name: "test", Conclusion: "failure"},
				{Name: "docs", Conclusion: "skipped"},
			}})
		case "/repos/acme/overlays/statuses/head0001":
			json.NewDecoder(r.Body).Decode(&status)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("{}"))
		case "/repos/acme/overlays/issues/7/comments":
			json.NewDecoder(r.Body).Decode(&comment)
			json.NewEncoder(w).Encode(gh.IssueComment{ID: 1})
		default:
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	})

	if err := c.Summarize(context.Background(), 42, 7); err != nil {
		t.Fatal(err)
	}

	if status.State != "failure" {
		t.Errorf("status state: got %q, want failure", status.State)
	}
	if status.Description != "1 of 3 jobs failed" {
		t.Errorf("status description: %q", status.Description)
	}
	if !strings.Contains(comment.Body, "**1 of 3 jobs failed.**") {
		t.Errorf("comment: %q", comment.Body)
	}
	if !strings.Contains(comment.Body, "❌ test") {
		t.Errorf("comment missing failed job marker: %q", comment.Body)
	}
	if !strings.Contains(comment.Body, "⏭️ docs") {
		t.Errorf("comment missing skipped job marker: %q", comment.Body)
	}
}

func TestSummarize_RunFetchFailurePropagates(t *testing.T) {
	c := newTestChecks(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(gh.ErrorResponse{Message: "Not Found"})
	})

	err := c.Summarize(context.Background(), 42, 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if !gh.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
