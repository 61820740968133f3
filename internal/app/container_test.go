package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/infra/ghcli"
	"github.com/tawada/grass-grower/internal/infra/githubapi"
	"github.com/tawada/grass-grower/internal/testutil"
)

func TestNew_SelectsIssueTracker(t *testing.T) {
	cfg := domain.NewDefaultConfig()

	c, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ghcli.Tracker{}, c.Issues)

	cfg.GitHubBackend = domain.BackendAPI
	cfg.GitHubToken = "ghp-test"
	c, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &githubapi.Tracker{}, c.Issues)

	cfg.GitHubBackend = "svn"
	_, err = New(cfg)
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestContainer_LLMFactoriesRequireAPIKey(t *testing.T) {
	c, err := New(domain.NewDefaultConfig())
	require.NoError(t, err)

	_, err = c.AddIssueUseCase()
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	_, err = c.GenerateCodeFromIssueAndReplyUseCase()
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)

	// Actions without an LLM still work.
	assert.NotNil(t, c.ShowConfigUseCase())
}

func TestContainer_LLMBuiltOnce(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	c, err := New(cfg)
	require.NoError(t, err)

	first, err := c.LLM()
	require.NoError(t, err)
	second, err := c.LLM()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestNewWithDeps(t *testing.T) {
	model := &testutil.MockLLM{}
	c := NewWithDeps(domain.NewDefaultConfig(), &testutil.MockRepositoryGateway{}, testutil.NewMockIssueTracker(), model, &testutil.MockClock{})

	got, err := c.LLM()
	require.NoError(t, err)
	assert.Same(t, model, got)

	for _, build := range []func() (any, error){
		func() (any, error) { return c.AddIssueUseCase() },
		func() (any, error) { return c.UpdateIssueUseCase() },
		func() (any, error) { return c.SummarizeIssueUseCase() },
		func() (any, error) { return c.GrowGrassUseCase() },
		func() (any, error) { return c.GenerateCodeFromIssueUseCase() },
		func() (any, error) { return c.GenerateCodeFromIssueAndReplyUseCase() },
		func() (any, error) { return c.GenerateReadmeUseCase() },
	} {
		uc, err := build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	}
}
