package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
)

// GrowGrassInput contains the parameters for GrowGrass.
type GrowGrassInput struct {
	Repo   domain.Repo
	Branch string
	Lang   domain.Language
}

// GrowGrassOutput reports whether an issue was added.
type GrowGrassOutput struct {
	Issue   *AddIssueOutput // nil when skipped
	Skipped bool
}

// GrowGrass adds an issue unless the branch already has a commit today.
type GrowGrass struct {
	repos    domain.RepositoryGateway
	addIssue *AddIssue
	clock    domain.Clock
}

// NewGrowGrass creates a new GrowGrass use case.
func NewGrowGrass(repos domain.RepositoryGateway, addIssue *AddIssue, clock domain.Clock) *GrowGrass {
	return &GrowGrass{
		repos:    repos,
		addIssue: addIssue,
		clock:    clock,
	}
}

// Execute checks the last commit date and runs AddIssue when it is not today.
func (uc *GrowGrass) Execute(ctx context.Context, in GrowGrassInput) (*GrowGrassOutput, error) {
	log := clog.FromContext(ctx).With("repo", in.Repo.String(), "branch", in.Branch)

	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		return nil, fmt.Errorf("setup repository: %w", err)
	}
	last, err := uc.repos.LastCommitTime(ctx, in.Repo, in.Branch)
	if err != nil {
		return nil, fmt.Errorf("get last commit time: %w", err)
	}

	now := uc.clock.Now()
	if sameDay(last.In(now.Location()), now) {
		log.Info("already committed today, skipping", "last_commit", last)
		return &GrowGrassOutput{Skipped: true}, nil
	}

	out, err := uc.addIssue.Execute(ctx, AddIssueInput(in))
	if err != nil {
		return nil, err
	}
	return &GrowGrassOutput{Issue: out}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
