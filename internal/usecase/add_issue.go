package usecase

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// AddIssueInput contains the parameters for opening a new review issue.
type AddIssueInput struct {
	Repo   domain.Repo
	Branch string
	Lang   domain.Language
}

// AddIssueOutput contains the created issue.
type AddIssueOutput struct {
	Title string
	Body  string
}

// AddIssue reviews the repository code and opens one issue about it.
type AddIssue struct {
	repos     domain.RepositoryGateway
	issues    domain.IssueTracker
	llm       domain.LLM
	assembler *prompt.Assembler
}

// NewAddIssue creates a new AddIssue use case.
func NewAddIssue(repos domain.RepositoryGateway, issues domain.IssueTracker, llm domain.LLM, assembler *prompt.Assembler) *AddIssue {
	return &AddIssue{
		repos:     repos,
		issues:    issues,
		llm:       llm,
		assembler: assembler,
	}
}

// Execute generates an issue body from the code, summarizes it into a title
// and creates the issue.
func (uc *AddIssue) Execute(ctx context.Context, in AddIssueInput) (*AddIssueOutput, error) {
	log := clog.FromContext(ctx).With("repo", in.Repo.String())

	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		return nil, fmt.Errorf("setup repository: %w", err)
	}

	files, err := uc.assembler.FileMessages(uc.repos.Dir(in.Repo), in.Lang)
	if err != nil {
		return nil, fmt.Errorf("read files: %w", err)
	}

	log.Info("generating issue", "files", len(files))
	body, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(files, prompt.IssueInstruction(in.Lang)))
	if err != nil {
		return nil, fmt.Errorf("generate issue body: %w", err)
	}

	title, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(
		[]domain.Message{domain.AssistantMessage(body)},
		prompt.TitleInstruction(in.Lang),
	))
	if err != nil {
		return nil, fmt.Errorf("generate issue title: %w", err)
	}
	title = prompt.CleanTitle(title)

	if err := uc.issues.CreateIssue(ctx, in.Repo, title, body); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	log.Info("issue created", "title", title)

	return &AddIssueOutput{Title: title, Body: body}, nil
}
