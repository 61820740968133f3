package domain

import (
	"context"
	"time"
)

// CommandExecutor runs external commands.
// Failures are returned as *CommandError.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(ctx context.Context, cmd *ExecCommand) ([]byte, error)
}

// RepositoryGateway manages local working copies of GitHub repositories.
type RepositoryGateway interface {
	// Setup clones or updates the working copy and checks out branch.
	Setup(ctx context.Context, repo Repo, branch string) error
	// Dir returns the working copy directory.
	Dir(repo Repo) string
	CheckoutBranch(ctx context.Context, repo Repo, branch string) error
	CheckoutNewBranch(ctx context.Context, repo Repo, branch string) error
	DeleteBranch(ctx context.Context, repo Repo, branch string) error
	// Discard resets tracked files to HEAD and removes untracked files.
	Discard(ctx context.Context, repo Repo) error
	// Commit stages all changes, including new files, and commits them.
	Commit(ctx context.Context, repo Repo, message string) error
	Push(ctx context.Context, repo Repo, branch string) error
	// LastCommitTime returns the commit time of the tip of branch.
	LastCommitTime(ctx context.Context, repo Repo, branch string) (time.Time, error)
}

// IssueTracker reads and writes GitHub issues.
type IssueTracker interface {
	// GetIssue returns the issue with its comments.
	// Returns ErrIssueNotFound if the issue does not exist.
	GetIssue(ctx context.Context, repo Repo, id int) (*Issue, error)
	ListIssueIDs(ctx context.Context, repo Repo) ([]int, error)
	CreateIssue(ctx context.Context, repo Repo, title, body string) error
	ReplyIssue(ctx context.Context, repo Repo, id int, body string) error
}

// LLM generates completions from a message sequence.
type LLM interface {
	GenerateText(ctx context.Context, messages []Message) (string, error)
	// GenerateJSON decodes a JSON completion into out.
	// Decode failures are retried a bounded number of times.
	GenerateJSON(ctx context.Context, messages []Message, out any) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
