// Package git manages local working copies of GitHub repositories.
//
// Mutating operations shell out to git through the command executor so
// failures are classified in one place. Read-only lookups use go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/tawada/grass-grower/internal/domain"
)

const originHeadRef = plumbing.ReferenceName("refs/remotes/origin/HEAD")

// Ensure Client implements domain.RepositoryGateway.
var _ domain.RepositoryGateway = (*Client)(nil)

// Client implements domain.RepositoryGateway.
// Fields are ordered to minimize memory padding.
type Client struct {
	exec           domain.CommandExecutor
	repositoryPath string // Directory holding <owner>/<name> working copies
	cloneURLPrefix string // Prepended to owner/name to form the clone URL
	defaultBranch  string // Used when origin/HEAD is not set
}

// NewClient creates a new git client.
func NewClient(exec domain.CommandExecutor, repositoryPath, cloneURLPrefix, defaultBranch string) *Client {
	return &Client{
		exec:           exec,
		repositoryPath: repositoryPath,
		cloneURLPrefix: cloneURLPrefix,
		defaultBranch:  defaultBranch,
	}
}

// Dir returns the working copy directory for repo.
func (c *Client) Dir(repo domain.Repo) string {
	return repo.Dir(c.repositoryPath)
}

// Setup clones repo if it is not present, otherwise returns to the default
// branch and pulls. Finally branch is checked out.
func (c *Client) Setup(ctx context.Context, repo domain.Repo, branch string) error {
	log := clog.FromContext(ctx).With("repo", repo.String())
	dir := c.Dir(repo)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Info("cloning repository", "dir", dir)
		if err := c.clone(ctx, repo); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	} else {
		log.Info("updating repository", "dir", dir)
		if err := c.update(ctx, repo); err != nil {
			return err
		}
	}

	return c.CheckoutBranch(ctx, repo, branch)
}

func (c *Client) clone(ctx context.Context, repo domain.Repo) error {
	ownerDir := filepath.Join(c.repositoryPath, repo.Owner)
	if err := os.MkdirAll(ownerDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", ownerDir, err)
	}
	url := c.cloneURLPrefix + repo.String()
	if _, err := c.run(ctx, ownerDir, "clone", url, repo.Name); err != nil {
		return fmt.Errorf("failed to clone %s: %w", repo, err)
	}
	return nil
}

func (c *Client) update(ctx context.Context, repo domain.Repo) error {
	dir := c.Dir(repo)
	current, err := c.CurrentBranch(dir)
	if err != nil {
		return err
	}
	base := c.DefaultBranch(dir)
	if current != base {
		if err := c.CheckoutBranch(ctx, repo, base); err != nil {
			return err
		}
	}
	if _, err := c.run(ctx, dir, "pull"); err != nil {
		return fmt.Errorf("failed to pull %s: %w", repo, err)
	}
	return nil
}

// CheckoutBranch switches the working copy to an existing branch.
func (c *Client) CheckoutBranch(ctx context.Context, repo domain.Repo, branch string) error {
	if _, err := c.run(ctx, c.Dir(repo), "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}

// CheckoutNewBranch creates branch from HEAD and switches to it.
// Returns an error matching domain.ErrBranchExists if it already exists.
func (c *Client) CheckoutNewBranch(ctx context.Context, repo domain.Repo, branch string) error {
	if _, err := c.run(ctx, c.Dir(repo), "checkout", "-b", branch); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch.
func (c *Client) DeleteBranch(ctx context.Context, repo domain.Repo, branch string) error {
	if _, err := c.run(ctx, c.Dir(repo), "branch", "-D", branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branch, err)
	}
	return nil
}

// Discard drops uncommitted changes, including new untracked files.
// Ignored files are kept.
func (c *Client) Discard(ctx context.Context, repo domain.Repo) error {
	dir := c.Dir(repo)
	if _, err := c.run(ctx, dir, "reset", "--hard", "HEAD"); err != nil {
		return fmt.Errorf("failed to reset working copy: %w", err)
	}
	if _, err := c.run(ctx, dir, "clean", "-fd"); err != nil {
		return fmt.Errorf("failed to clean working copy: %w", err)
	}
	return nil
}

// Commit stages all changes, including new files, and commits them.
func (c *Client) Commit(ctx context.Context, repo domain.Repo, message string) error {
	dir := c.Dir(repo)
	if _, err := c.run(ctx, dir, "add", "--all"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if _, err := c.run(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes branch to origin.
func (c *Client) Push(ctx context.Context, repo domain.Repo, branch string) error {
	if _, err := c.run(ctx, c.Dir(repo), "push", "origin", branch); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// LastCommitTime returns the committer time of the tip of branch.
func (c *Client) LastCommitTime(_ context.Context, repo domain.Repo, branch string) (time.Time, error) {
	r, err := gogit.PlainOpen(c.Dir(repo))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open %s: %w", repo, err)
	}
	ref, err := r.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}
	commit, err := r.CommitObject(ref.Hash())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}
	return commit.Committer.When, nil
}

// CurrentBranch returns the name of the branch checked out in dir.
func (c *Client) CurrentBranch(dir string) (string, error) {
	r, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", dir, err)
	}
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return head.Name().Short(), nil
}

// DefaultBranch returns the branch origin/HEAD points to, or the configured
// default when the working copy has no origin/HEAD.
func (c *Client) DefaultBranch(dir string) string {
	r, err := gogit.PlainOpen(dir)
	if err != nil {
		return c.defaultBranch
	}
	ref, err := r.Reference(originHeadRef, false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return c.defaultBranch
	}
	return strings.TrimPrefix(ref.Target().Short(), "origin/")
}

func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return c.exec.Execute(ctx, domain.NewCommand("git", args, dir))
}
