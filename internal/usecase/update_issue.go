package usecase

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// UpdateIssueInput contains the parameters for commenting on an issue.
// Fields are ordered to minimize memory padding.
type UpdateIssueInput struct {
	Repo    domain.Repo
	Branch  string
	Lang    domain.Language
	IssueID int
}

// UpdateIssueOutput contains the posted comment.
type UpdateIssueOutput struct {
	Comment string
}

// UpdateIssue adds an LLM-written comment to an existing issue.
type UpdateIssue struct {
	repos     domain.RepositoryGateway
	issues    domain.IssueTracker
	llm       domain.LLM
	assembler *prompt.Assembler
}

// NewUpdateIssue creates a new UpdateIssue use case.
func NewUpdateIssue(repos domain.RepositoryGateway, issues domain.IssueTracker, llm domain.LLM, assembler *prompt.Assembler) *UpdateIssue {
	return &UpdateIssue{
		repos:     repos,
		issues:    issues,
		llm:       llm,
		assembler: assembler,
	}
}

// Execute reads the code and the issue thread and replies to the issue.
func (uc *UpdateIssue) Execute(ctx context.Context, in UpdateIssueInput) (*UpdateIssueOutput, error) {
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

	comment, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(messages, prompt.UpdateIssueInstruction))
	if err != nil {
		return nil, fmt.Errorf("generate comment: %w", err)
	}

	if err := uc.issues.ReplyIssue(ctx, in.Repo, issue.ID, comment); err != nil {
		return nil, fmt.Errorf("reply to issue #%d: %w", issue.ID, err)
	}
	clog.FromContext(ctx).Info("issue updated", "repo", in.Repo.String(), "issue", issue.ID)

	return &UpdateIssueOutput{Comment: comment}, nil
}
