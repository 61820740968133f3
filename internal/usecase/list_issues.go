package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/tawada/grass-grower/internal/domain"
)

// ListIssuesInput contains the parameters for listing open issues.
type ListIssuesInput struct {
	Repo domain.Repo
}

// ListIssuesOutput contains the open issue numbers in ascending order.
type ListIssuesOutput struct {
	IDs []int
}

// ListIssues lists the open issues of a repository.
type ListIssues struct {
	issues domain.IssueTracker
}

// NewListIssues creates a new ListIssues use case.
func NewListIssues(issues domain.IssueTracker) *ListIssues {
	return &ListIssues{issues: issues}
}

// Execute returns the open issue numbers.
func (uc *ListIssues) Execute(ctx context.Context, in ListIssuesInput) (*ListIssuesOutput, error) {
	ids, err := uc.issues.ListIssueIDs(ctx, in.Repo)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	slices.Sort(ids)
	return &ListIssuesOutput{IDs: ids}, nil
}
