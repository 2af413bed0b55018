// Package config loads runtime configuration from environment variables,
// with defaults suitable for running inside a CI job.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the overlayhub commands.
type Config struct {
	// Repo is the overlay repository in "owner/name" form.
	Repo string `mapstructure:"repo"`
	// Branch is the target branch the report and PR automation run against.
	Branch string `mapstructure:"branch"`
	// Token authenticates against the GitHub REST API.
	Token string `mapstructure:"token"`
	// APIBaseURL is the GitHub REST API root.
	APIBaseURL string `mapstructure:"api_base_url"`

	Paths  PathsConfig  `mapstructure:"paths"`
	Labels LabelsConfig `mapstructure:"labels"`
	Log    LogConfig    `mapstructure:"log"`
}

// PathsConfig holds the local filesystem layout of the overlay repository.
type PathsConfig struct {
	// WorkspacesDir is the directory containing one subfolder per workspace.
	WorkspacesDir string `mapstructure:"workspaces_dir"`
	// ListsDir holds the static support-tier classification lists.
	ListsDir string `mapstructure:"lists_dir"`
	// OutputDir is where the generated wiki page is written.
	OutputDir string `mapstructure:"output_dir"`
}

// LabelsConfig holds the PR labels that mark automation-driven updates.
// A PR counts as a pending workspace update only if it carries one of these.
type LabelsConfig struct {
	Update    string `mapstructure:"update"`
	Automated string `mapstructure:"automated"`
}

// All returns the configured labels as a slice, skipping empty entries.
func (l LabelsConfig) All() []string {
	var labels []string
	for _, s := range []string{l.Update, l.Automated} {
		if s != "" {
			labels = append(labels, s)
		}
	}
	return labels
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string `mapstructure:"format"` // "json", "text", or "" for auto
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// Load reads configuration from the environment. The four CI variables
// (REPO_NAME, BRANCH_NAME, GITHUB_TOKEN, GITHUB_API_URL) are bound without a
// prefix because the hosting workflow exports them that way; everything else
// is overridable under the OVERLAYHUB_ prefix.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("repo", "unknown/unknown")
	v.SetDefault("branch", "main")
	v.SetDefault("token", "")
	v.SetDefault("api_base_url", "https://api.github.com")
	v.SetDefault("paths.workspaces_dir", "workspaces")
	v.SetDefault("paths.lists_dir", ".github/support-lists")
	v.SetDefault("paths.output_dir", ".")
	v.SetDefault("labels.update", "workspace-update")
	v.SetDefault("labels.automated", "automated")
	v.SetDefault("log.format", "")
	v.SetDefault("log.level", "info")

	// CI-provided variables, no prefix.
	_ = v.BindEnv("repo", "REPO_NAME")
	_ = v.BindEnv("branch", "BRANCH_NAME")
	_ = v.BindEnv("token", "GITHUB_TOKEN")
	_ = v.BindEnv("api_base_url", "GITHUB_API_URL")

	v.SetEnvPrefix("OVERLAYHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
