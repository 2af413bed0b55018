// Package gh provides a scope-based client for the GitHub REST v3 API,
// covering the repository surface the automation needs: contents, commits,
// pull requests, low-level git objects, commit statuses, and workflow runs.
//
// Usage:
//
//	client, err := gh.New(baseURL, token, gh.WithTimeout(30*time.Second))
//	commit, err := client.Repo("acme/overlays").Commits().Get(ctx, "abc1234")
//	prs, err := client.Repo("acme/overlays").Pulls().ListAll(ctx, gh.WithBase("release-1.6"))
//
// Errors with an HTTP status are returned as *APIError; callers distinguish
// expected absence from real failure with the predicate helpers (IsNotFound
// and friends) rather than inspecting status codes at each call site.
package gh
