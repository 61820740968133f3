package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/testutil"
)

func TestGenerateReadme_Execute_Success(t *testing.T) {
	// Setup
	repos := setupWorkingCopy(t, map[string]string{"README.md": "# Old\n", "main.py": "print(1)\n"})
	var committed string
	repos.OnCommit = func(string) {
		committed = readFile(t, repos.RootDir, "README.md")
	}
	llm := &testutil.MockLLM{Texts: []string{"```markdown\n# Hello\n\nPrints one.\n```"}}
	uc := NewGenerateReadme(repos, llm, newAssembler())

	// Execute
	out, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nPrints one.\n", out.Content)
	assert.Equal(t, out.Content, committed)
	assert.Equal(t, []string{
		"setup octo/hello main",
		"checkout -b update-readme",
		"commit Update README.md",
		"push update-readme",
		"checkout main",
		"delete update-readme",
	}, repos.Calls)

	req := llm.Requests[0]
	require.Len(t, req, 3)
	assert.Contains(t, req[0].Content, "main.py")
	assert.Equal(t, "```Current README.md\n# Old\n```", req[1].Content)
	assert.Equal(t, domain.RoleSystem, req[2].Role)
}

func TestGenerateReadme_Execute_MissingReadme(t *testing.T) {
	// Setup
	repos := setupWorkingCopy(t, map[string]string{"main.py": "print(1)\n"})
	llm := &testutil.MockLLM{}
	uc := NewGenerateReadme(repos, llm, newAssembler())

	// Execute
	_, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	assert.ErrorIs(t, err, domain.ErrReadmeNotFound)
	assert.Empty(t, llm.Requests)
	assert.Equal(t, []string{"setup octo/hello main"}, repos.Calls)
}

func TestGenerateReadme_Execute_PushFailureCleansUp(t *testing.T) {
	// Setup
	repos := setupWorkingCopy(t, map[string]string{"README.md": "# Old\n"})
	repos.PushErr = errors.New("rejected")
	llm := &testutil.MockLLM{Texts: []string{"# New"}}
	uc := NewGenerateReadme(repos, llm, newAssembler())

	// Execute
	_, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	assert.ErrorIs(t, err, repos.PushErr)
	assert.Equal(t, []string{"checkout main", "delete update-readme"}, repos.Calls[len(repos.Calls)-2:])
}

func TestGenerateReadme_Execute_CommitFailureDiscardsWrite(t *testing.T) {
	// Setup
	repos := setupWorkingCopy(t, map[string]string{"README.md": "# Old\n"})
	repos.CommitErr = errors.New("pre-commit hook failed")
	llm := &testutil.MockLLM{Texts: []string{"# New"}}
	uc := NewGenerateReadme(repos, llm, newAssembler())

	// Execute
	_, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	assert.ErrorIs(t, err, repos.CommitErr)
	assert.Equal(t, []string{
		"commit Update README.md",
		"discard",
		"checkout main",
		"delete update-readme",
	}, repos.Calls[len(repos.Calls)-4:])
}

func TestGenerateReadme_Execute_CommitFailureLeavesBaseClean(t *testing.T) {
	// Setup
	repos := setupGitWorkingCopy(t, map[string]string{"README.md": "# Old\n"}, true)
	llm := &testutil.MockLLM{Texts: []string{"# New"}}
	uc := NewGenerateReadme(repos, llm, newAssembler())
	dir := repos.Dir(testRepo)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	require.Error(t, err)
	branch, err := repos.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
	assert.Empty(t, runGit(t, dir, "status", "--porcelain"))
	assert.Equal(t, "# Old\n", readFile(t, dir, "README.md"))
	assert.NotContains(t, runGit(t, dir, "branch", "--list"), "update-readme")
}

func TestGenerateReadme_Execute_BranchExists(t *testing.T) {
	// Setup
	repos := setupWorkingCopy(t, map[string]string{"README.md": "# Old\n"})
	repos.CheckoutNewBranchErr = domain.ErrBranchExists
	llm := &testutil.MockLLM{Texts: []string{"# New"}}
	uc := NewGenerateReadme(repos, llm, newAssembler())

	// Execute
	_, err := uc.Execute(context.Background(), GenerateReadmeInput{Repo: testRepo, Branch: "main", Lang: domain.LangPython})

	// Verify
	assert.ErrorIs(t, err, domain.ErrBranchExists)
	assert.Equal(t, "# Old\n", readFile(t, repos.RootDir, "README.md"))
}
