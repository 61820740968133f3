package usecase

import (
	"context"
	"fmt"

	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// GenerateCodeFromIssueInput contains the parameters for proposing code for an issue.
// Fields are ordered to minimize memory padding.
type GenerateCodeFromIssueInput struct {
	Repo    domain.Repo
	Branch  string
	Lang    domain.Language
	IssueID int
}

// GenerateCodeFromIssueOutput contains the proposed rewrite.
type GenerateCodeFromIssueOutput struct {
	Code string
}

// GenerateCodeFromIssue asks the LLM to rewrite code for an issue without
// touching the repository.
type GenerateCodeFromIssue struct {
	repos     domain.RepositoryGateway
	issues    domain.IssueTracker
	llm       domain.LLM
	assembler *prompt.Assembler
}

// NewGenerateCodeFromIssue creates a new GenerateCodeFromIssue use case.
func NewGenerateCodeFromIssue(repos domain.RepositoryGateway, issues domain.IssueTracker, llm domain.LLM, assembler *prompt.Assembler) *GenerateCodeFromIssue {
	return &GenerateCodeFromIssue{
		repos:     repos,
		issues:    issues,
		llm:       llm,
		assembler: assembler,
	}
}

// Execute returns the generated code.
func (uc *GenerateCodeFromIssue) Execute(ctx context.Context, in GenerateCodeFromIssueInput) (*GenerateCodeFromIssueOutput, error) {
	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		return nil, fmt.Errorf("setup repository: %w", err)
	}

	issue, err := uc.issues.GetIssue(ctx, in.Repo, in.IssueID)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", in.IssueID, err)
	}

	messages, err := uc.assembler.FileMessages(uc.repos.Dir(in.Repo), in.Lang)
	if err != nil {
		return nil, fmt.Errorf("read files: %w", err)
	}
	messages = append(messages, prompt.IssueMessages(issue)...)

	code, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(messages, prompt.RewriteInstruction))
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	return &GenerateCodeFromIssueOutput{Code: code}, nil
}
