package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
	"github.com/tawada/grass-grower/internal/testutil"
)

func TestSummarizeIssue_Execute_Success(t *testing.T) {
	// Setup
	repos := &testutil.MockRepositoryGateway{}
	issues := testutil.NewMockIssueTracker()
	issues.Issues[7] = sampleIssue(7)
	llm := &testutil.MockLLM{Texts: []string{"f should return 1; maintainers agree."}}
	uc := NewSummarizeIssue(repos, issues, llm)

	// Execute
	out, err := uc.Execute(context.Background(), SummarizeIssueInput{Repo: testRepo, Branch: "main", IssueID: 7})

	// Verify
	require.NoError(t, err)
	assert.Equal(t, "f should return 1; maintainers agree.", out.Summary)
	assert.Equal(t, []testutil.Reply{{IssueID: 7, Body: "Summary:\nf should return 1; maintainers agree."}}, issues.Replies)
	req := llm.Requests[0]
	require.Len(t, req, 3)
	assert.Equal(t, domain.SystemMessage(prompt.SummarizeIssueInstruction), req[2])
}

func TestSummarizeIssue_Execute_AlreadySummarized(t *testing.T) {
	tests := []struct {
		name  string
		issue *domain.Issue
	}{
		{"summary field", &domain.Issue{ID: 7, Title: "t", Summary: "done"}},
		{"summary comment", &domain.Issue{ID: 7, Title: "t", Comments: []domain.Comment{{Author: "bot", Body: "Summary:\nold"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			issues := testutil.NewMockIssueTracker()
			issues.Issues[7] = tt.issue
			llm := &testutil.MockLLM{}
			uc := NewSummarizeIssue(&testutil.MockRepositoryGateway{}, issues, llm)

			// Execute
			_, err := uc.Execute(context.Background(), SummarizeIssueInput{Repo: testRepo, Branch: "main", IssueID: 7})

			// Verify
			assert.ErrorIs(t, err, domain.ErrAlreadySummarized)
			assert.Empty(t, llm.Requests)
			assert.Empty(t, issues.Replies)
		})
	}
}
