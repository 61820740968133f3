// Package ghcli implements domain.IssueTracker on top of the gh CLI.
package ghcli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/issuetext"
)

// Ensure Tracker implements domain.IssueTracker.
var _ domain.IssueTracker = (*Tracker)(nil)

// Tracker reads and writes issues through gh.
type Tracker struct {
	exec domain.CommandExecutor
}

// NewTracker creates a new Tracker.
func NewTracker(exec domain.CommandExecutor) *Tracker {
	return &Tracker{exec: exec}
}

// GetIssue fetches the issue header and its comments.
func (t *Tracker) GetIssue(ctx context.Context, repo domain.Repo, id int) (*domain.Issue, error) {
	num := strconv.Itoa(id)
	out, err := t.gh(ctx, "issue", "view", num, "-R", repo.String())
	if err != nil {
		return nil, fmt.Errorf("failed to view issue #%d: %w", id, err)
	}
	issue, err := issuetext.ParseIssue(string(out), id)
	if err != nil {
		return nil, fmt.Errorf("issue #%d: %w", id, err)
	}

	out, err = t.gh(ctx, "issue", "view", num, "-R", repo.String(), "--comments")
	if err != nil {
		return nil, fmt.Errorf("failed to view comments of issue #%d: %w", id, err)
	}
	comments, skipped := issuetext.ParseComments(string(out))
	if skipped > 0 {
		clog.FromContext(ctx).Warn("skipped comments with missing attributes", "issue", id, "skipped", skipped)
	}
	issue.Comments = comments
	if summary, ok := issue.FindSummary(); ok {
		issue.Summary = summary
	}
	return issue, nil
}

// ListIssueIDs returns the numbers of the open issues.
func (t *Tracker) ListIssueIDs(ctx context.Context, repo domain.Repo) ([]int, error) {
	out, err := t.gh(ctx, "issue", "list", "-R", repo.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issuetext.ParseIssueIDs(string(out))
}

// CreateIssue opens a new issue.
func (t *Tracker) CreateIssue(ctx context.Context, repo domain.Repo, title, body string) error {
	if _, err := t.gh(ctx, "issue", "create", "-R", repo.String(), "-t", title, "-b", body); err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// ReplyIssue posts a comment on an issue.
func (t *Tracker) ReplyIssue(ctx context.Context, repo domain.Repo, id int, body string) error {
	if _, err := t.gh(ctx, "issue", "comment", strconv.Itoa(id), "-R", repo.String(), "-b", body); err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", id, err)
	}
	return nil
}

func (t *Tracker) gh(ctx context.Context, args ...string) ([]byte, error) {
	return t.exec.Execute(ctx, domain.NewCommand("gh", args, ""))
}
