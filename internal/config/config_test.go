package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Branch != "main" {
		t.Errorf("default branch: got %q, want main", cfg.Branch)
	}
	if cfg.Repo != "unknown/unknown" {
		t.Errorf("default repo: got %q", cfg.Repo)
	}
	if cfg.APIBaseURL != "https://api.github.com" {
		t.Errorf("default api base: got %q", cfg.APIBaseURL)
	}
	if cfg.Paths.WorkspacesDir != "workspaces" {
		t.Errorf("default workspaces dir: got %q", cfg.Paths.WorkspacesDir)
	}
	if cfg.Labels.Update != "workspace-update" || cfg.Labels.Automated != "automated" {
		t.Errorf("default labels: got %+v", cfg.Labels)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRANCH_NAME", "release-1.6")
	t.Setenv("REPO_NAME", "acme/overlays")
	t.Setenv("GITHUB_TOKEN", "ghs_test")
	t.Setenv("OVERLAYHUB_PATHS_OUTPUT_DIR", "/tmp/wiki")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Branch != "release-1.6" {
		t.Errorf("branch: got %q, want release-1.6", cfg.Branch)
	}
	if cfg.Repo != "acme/overlays" {
		t.Errorf("repo: got %q", cfg.Repo)
	}
	if cfg.Token != "ghs_test" {
		t.Errorf("token: got %q", cfg.Token)
	}
	if cfg.Paths.OutputDir != "/tmp/wiki" {
		t.Errorf("output dir: got %q", cfg.Paths.OutputDir)
	}
}
