package usecase

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// SummarizeIssueInput contains the parameters for summarizing an issue.
type SummarizeIssueInput struct {
	Repo    domain.Repo
	Branch  string
	IssueID int
}

// SummarizeIssueOutput contains the posted summary.
type SummarizeIssueOutput struct {
	Summary string
}

// SummarizeIssue posts a summary of an issue thread as a comment.
type SummarizeIssue struct {
	repos  domain.RepositoryGateway
	issues domain.IssueTracker
	llm    domain.LLM
}

// NewSummarizeIssue creates a new SummarizeIssue use case.
func NewSummarizeIssue(repos domain.RepositoryGateway, issues domain.IssueTracker, llm domain.LLM) *SummarizeIssue {
	return &SummarizeIssue{
		repos:  repos,
		issues: issues,
		llm:    llm,
	}
}

// Execute summarizes the issue and its comments.
// Returns domain.ErrAlreadySummarized if a summary comment exists.
func (uc *SummarizeIssue) Execute(ctx context.Context, in SummarizeIssueInput) (*SummarizeIssueOutput, error) {
	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		return nil, fmt.Errorf("setup repository: %w", err)
	}

	issue, err := uc.issues.GetIssue(ctx, in.Repo, in.IssueID)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", in.IssueID, err)
	}
	if issue.Summary != "" {
		return nil, fmt.Errorf("issue #%d: %w", issue.ID, domain.ErrAlreadySummarized)
	}
	if _, ok := issue.FindSummary(); ok {
		return nil, fmt.Errorf("issue #%d: %w", issue.ID, domain.ErrAlreadySummarized)
	}

	summary, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(prompt.IssueMessages(issue), prompt.SummarizeIssueInstruction))
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	if err := uc.issues.ReplyIssue(ctx, in.Repo, issue.ID, domain.SummaryPrefix+"\n"+summary); err != nil {
		return nil, fmt.Errorf("post summary to issue #%d: %w", issue.ID, err)
	}
	clog.FromContext(ctx).Info("issue summarized", "repo", in.Repo.String(), "issue", issue.ID)

	return &SummarizeIssueOutput{Summary: summary}, nil
}
