package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/testutil"
)

func TestGrowGrass_Execute(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastCommit  time.Time
		wantSkipped bool
	}{
		{"committed today", time.Date(2024, 5, 1, 0, 30, 0, 0, time.UTC), true},
		{"committed yesterday", time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC), false},
		{"today in another zone", time.Date(2024, 5, 1, 18, 0, 0, 0, time.FixedZone("JST", 9*60*60)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			repos := setupWorkingCopy(t, map[string]string{"main.py": "x = 1\n"})
			repos.LastCommit = tt.lastCommit
			issues := testutil.NewMockIssueTracker()
			llm := &testutil.MockLLM{Texts: []string{"body", "title"}}
			addIssue := NewAddIssue(repos, issues, llm, newAssembler())
			uc := NewGrowGrass(repos, addIssue, &testutil.MockClock{NowTime: now})

			// Execute
			out, err := uc.Execute(context.Background(), GrowGrassInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

			// Verify
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkipped, out.Skipped)
			if tt.wantSkipped {
				assert.Nil(t, out.Issue)
				assert.Empty(t, issues.Created)
				return
			}
			require.NotNil(t, out.Issue)
			assert.Len(t, issues.Created, 1)
		})
	}
}

func TestGrowGrass_Execute_LastCommitError(t *testing.T) {
	// Setup
	repos := &testutil.MockRepositoryGateway{LastCommitErr: assert.AnError}
	uc := NewGrowGrass(repos, nil, &testutil.MockClock{NowTime: time.Now()})

	// Execute
	_, err := uc.Execute(context.Background(), GrowGrassInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	assert.ErrorIs(t, err, assert.AnError)
}
