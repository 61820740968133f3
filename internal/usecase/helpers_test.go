package usecase

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/infra/executor"
	"github.com/tawada/grass-grower/internal/infra/git"
	"github.com/tawada/grass-grower/internal/prompt"
	"github.com/tawada/grass-grower/internal/testutil"
)

var testRepo = domain.Repo{Owner: "octo", Name: "hello"}

// setupWorkingCopy writes files into a temporary directory and returns a
// repository gateway mock rooted there.
func setupWorkingCopy(t *testing.T, files map[string]string) *testutil.MockRepositoryGateway {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return &testutil.MockRepositoryGateway{RootDir: root}
}

func newAssembler() *prompt.Assembler {
	return prompt.NewAssembler([]string{"__pycache__", ".git"})
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	return string(data)
}

func sampleIssue(id int) *domain.Issue {
	return &domain.Issue{
		ID:    id,
		Title: "f should return one",
		Body:  "f currently returns None.",
		Comments: []domain.Comment{
			{Author: "alice", Association: "MEMBER", Edited: "false", Status: "none", Body: "Agreed."},
		},
	}
}

// setupGitWorkingCopy pushes files to a bare remote and clones it through a
// real git client. When rejectCommits is set a pre-commit hook makes every
// commit in the clone fail.
func setupGitWorkingCopy(t *testing.T, files map[string]string, rejectCommits bool) *git.Client {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	src := t.TempDir()
	runGit(t, src, "init", "-b", "main")
	configGitUser(t, src)
	for name, content := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	runGit(t, src, "add", ".")
	runGit(t, src, "commit", "-m", "Initial commit")

	remotes := t.TempDir()
	bare := filepath.Join(remotes, testRepo.Owner, testRepo.Name)
	require.NoError(t, os.MkdirAll(filepath.Dir(bare), 0o755))
	runGit(t, remotes, "clone", "--bare", src, bare)

	client := git.NewClient(executor.NewClient(), t.TempDir(), remotes+string(filepath.Separator), "main")
	require.NoError(t, client.Setup(context.Background(), testRepo, "main"))
	dir := client.Dir(testRepo)
	configGitUser(t, dir)
	if rejectCommits {
		hook := filepath.Join(dir, ".git", "hooks", "pre-commit")
		require.NoError(t, os.WriteFile(hook, []byte("#!/bin/sh\nexit 1\n"), 0o755))
	}
	return client
}

func configGitUser(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
}

// runGit executes a git command and fails the test if it errors.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return string(out)
}
