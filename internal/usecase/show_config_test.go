package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
)

func TestShowConfig_Execute(t *testing.T) {
	// Setup
	cfg := domain.NewDefaultConfig()
	cfg.OpenAIAPIKey = "sk-1234567890abcd"
	cfg.GitHubToken = "short"
	cfg.Warnings = []string{"config file not found"}
	uc := NewShowConfig(cfg)

	// Execute
	out, err := uc.Execute(context.Background(), ShowConfigInput{})

	// Verify
	require.NoError(t, err)
	values := make(map[string]string, len(out.Entries))
	for _, e := range out.Entries {
		values[e.Key] = e.Value
	}
	assert.Equal(t, "downloads", values["repository_path"])
	assert.Equal(t, "__pycache__, .git, downloads", values["exclude_dirs"])
	assert.Equal(t, "****abcd", values["OPENAI_API_KEY"])
	assert.Equal(t, "****", values["GITHUB_TOKEN"])
	assert.Equal(t, "(not set)", values["ANTHROPIC_API_KEY"])
	assert.Equal(t, []string{"config file not found"}, out.Warnings)
}
