// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"sync"

	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/infra/executor"
	"github.com/tawada/grass-grower/internal/infra/ghcli"
	"github.com/tawada/grass-grower/internal/infra/git"
	"github.com/tawada/grass-grower/internal/infra/githubapi"
	"github.com/tawada/grass-grower/internal/infra/llm"
	"github.com/tawada/grass-grower/internal/patch"
	"github.com/tawada/grass-grower/internal/prompt"
	"github.com/tawada/grass-grower/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
// Fields are ordered to minimize memory padding.
type Container struct {
	// Ports (interfaces bound to implementations)
	Repos  domain.RepositoryGateway
	Issues domain.IssueTracker
	Clock  domain.Clock

	// Pure components
	Patch     *patch.Engine
	Assembler *prompt.Assembler

	// Configuration
	Config *domain.Config

	// The LLM is built on first use so actions without one run without an API key.
	newLLM  func(*domain.Config) (domain.LLM, error)
	llm     domain.LLM
	llmErr  error
	llmOnce sync.Once
}

// New creates a new Container from the resolved configuration.
func New(cfg *domain.Config) (*Container, error) {
	exec := executor.NewClient()

	var issues domain.IssueTracker
	switch cfg.GitHubBackend {
	case domain.BackendGH, "":
		issues = ghcli.NewTracker(exec)
	case domain.BackendAPI:
		issues = githubapi.NewTracker(cfg.GitHubToken)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.GitHubBackend)
	}

	return &Container{
		Repos:     git.NewClient(exec, cfg.RepositoryPath, cfg.CloneURLPrefix, cfg.DefaultBranch),
		Issues:    issues,
		Clock:     domain.RealClock{},
		Patch:     patch.NewEngine(),
		Assembler: prompt.NewAssembler(cfg.EffectiveExcludeDirs()),
		Config:    cfg,
		newLLM: func(cfg *domain.Config) (domain.LLM, error) {
			g, err := llm.New(cfg)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, repos domain.RepositoryGateway, issues domain.IssueTracker, model domain.LLM, clock domain.Clock) *Container {
	return &Container{
		Repos:     repos,
		Issues:    issues,
		Clock:     clock,
		Patch:     patch.NewEngine(),
		Assembler: prompt.NewAssembler(cfg.EffectiveExcludeDirs()),
		Config:    cfg,
		newLLM: func(*domain.Config) (domain.LLM, error) {
			return model, nil
		},
	}
}

// LLM returns the configured LLM gateway, building it on first use.
func (c *Container) LLM() (domain.LLM, error) {
	c.llmOnce.Do(func() {
		c.llm, c.llmErr = c.newLLM(c.Config)
	})
	return c.llm, c.llmErr
}

// UseCase factory methods

// AddIssueUseCase returns a new AddIssue use case.
func (c *Container) AddIssueUseCase() (*usecase.AddIssue, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewAddIssue(c.Repos, c.Issues, model, c.Assembler), nil
}

// UpdateIssueUseCase returns a new UpdateIssue use case.
func (c *Container) UpdateIssueUseCase() (*usecase.UpdateIssue, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewUpdateIssue(c.Repos, c.Issues, model, c.Assembler), nil
}

// SummarizeIssueUseCase returns a new SummarizeIssue use case.
func (c *Container) SummarizeIssueUseCase() (*usecase.SummarizeIssue, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewSummarizeIssue(c.Repos, c.Issues, model), nil
}

// GrowGrassUseCase returns a new GrowGrass use case.
func (c *Container) GrowGrassUseCase() (*usecase.GrowGrass, error) {
	addIssue, err := c.AddIssueUseCase()
	if err != nil {
		return nil, err
	}
	return usecase.NewGrowGrass(c.Repos, addIssue, c.Clock), nil
}

// GenerateCodeFromIssueUseCase returns a new GenerateCodeFromIssue use case.
func (c *Container) GenerateCodeFromIssueUseCase() (*usecase.GenerateCodeFromIssue, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewGenerateCodeFromIssue(c.Repos, c.Issues, model, c.Assembler), nil
}

// GenerateCodeFromIssueAndReplyUseCase returns a new GenerateCodeFromIssueAndReply use case.
func (c *Container) GenerateCodeFromIssueAndReplyUseCase() (*usecase.GenerateCodeFromIssueAndReply, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewGenerateCodeFromIssueAndReply(c.Repos, c.Issues, model, c.Assembler, c.Patch, c.Config.ReportPatchFailures), nil
}

// GenerateReadmeUseCase returns a new GenerateReadme use case.
func (c *Container) GenerateReadmeUseCase() (*usecase.GenerateReadme, error) {
	model, err := c.LLM()
	if err != nil {
		return nil, err
	}
	return usecase.NewGenerateReadme(c.Repos, model, c.Assembler), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.Config)
}

// ListIssuesUseCase returns a new ListIssues use case.
func (c *Container) ListIssuesUseCase() *usecase.ListIssues {
	return usecase.NewListIssues(c.Issues)
}
