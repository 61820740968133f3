// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/tawada/grass-grower/internal/domain"
)

// ConfigEntry is one resolved configuration value.
type ConfigEntry struct {
	Key   string
	Value string
}

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Entries  []ConfigEntry
	Warnings []string
}

// ShowConfig lists the resolved configuration with secrets masked.
type ShowConfig struct {
	cfg *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(cfg *domain.Config) *ShowConfig {
	return &ShowConfig{cfg: cfg}
}

// Execute returns the configuration entries in a stable order.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	c := uc.cfg
	entries := []ConfigEntry{
		{"repository_path", c.RepositoryPath},
		{"exclude_dirs", strings.Join(c.EffectiveExcludeDirs(), ", ")},
		{"llm_provider", c.LLMProvider},
		{"openai_model_name", c.OpenAIModelName},
		{"anthropic_model_name", c.AnthropicModelName},
		{"json_retries", strconv.Itoa(c.JSONRetries)},
		{"default_repo", c.DefaultRepo},
		{"default_branch", c.DefaultBranch},
		{"clone_url_prefix", c.CloneURLPrefix},
		{"github_backend", c.GitHubBackend},
		{"report_patch_failures", strconv.FormatBool(c.ReportPatchFailures)},
		{"log.level", c.Log.Level},
		{"log.file", c.Log.File},
		{"log.max_size_mb", strconv.Itoa(c.Log.MaxSizeMB)},
		{"log.max_age_days", strconv.Itoa(c.Log.MaxAgeDays)},
		{"OPENAI_API_KEY", maskSecret(c.OpenAIAPIKey)},
		{"OPENAI_BASE_URL", c.OpenAIBaseURL},
		{"ANTHROPIC_API_KEY", maskSecret(c.AnthropicAPIKey)},
		{"GITHUB_TOKEN", maskSecret(c.GitHubToken)},
	}
	return &ShowConfigOutput{Entries: entries, Warnings: c.Warnings}, nil
}

// maskSecret keeps the last four characters of secrets longer than eight.
func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
