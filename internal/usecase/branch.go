package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
)

// withTemporaryBranch checks out branch, runs fn, then returns to base and
// deletes branch whether or not fn succeeded. When fn fails, uncommitted
// changes are discarded first so they are not carried over to base.
// Cleanup failures are logged and never replace the error from fn.
//
// When reuse is set an existing branch is checked out instead of failing
// with domain.ErrBranchExists.
func withTemporaryBranch(ctx context.Context, repos domain.RepositoryGateway, repo domain.Repo, base, branch string, reuse bool, fn func() error) (err error) {
	log := clog.FromContext(ctx).With("repo", repo.String(), "branch", branch)

	if branch == base {
		defer func() {
			if err != nil {
				discard(ctx, repos, repo, log)
			}
		}()
		return fn()
	}

	if err := repos.CheckoutNewBranch(ctx, repo, branch); err != nil {
		if !reuse || !errors.Is(err, domain.ErrBranchExists) {
			return fmt.Errorf("create branch: %w", err)
		}
		log.Warn("branch already exists, reusing it")
		if err := repos.CheckoutBranch(ctx, repo, branch); err != nil {
			return fmt.Errorf("checkout existing branch: %w", err)
		}
	}

	defer func() {
		if err != nil {
			discard(ctx, repos, repo, log)
		}
		if err := repos.CheckoutBranch(ctx, repo, base); err != nil {
			log.Error("failed to return to base branch", "base", base, "error", err)
			return
		}
		if err := repos.DeleteBranch(ctx, repo, branch); err != nil {
			log.Error("failed to delete temporary branch", "error", err)
		}
	}()

	return fn()
}

func discard(ctx context.Context, repos domain.RepositoryGateway, repo domain.Repo, log *clog.Logger) {
	if err := repos.Discard(ctx, repo); err != nil {
		log.Error("failed to discard uncommitted changes", "error", err)
	}
}
