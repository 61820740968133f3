package domain

import (
	"fmt"
	"strings"
)

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{Program: program, Args: args, Dir: dir}
}

// String returns the command line as it would be typed.
func (c *ExecCommand) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// CommandErrorKind classifies a failed external command.
type CommandErrorKind string

// Command error kinds.
const (
	KindBranchExists    CommandErrorKind = "branch_exists"
	KindNothingToCommit CommandErrorKind = "nothing_to_commit"
	KindNoRefFetched    CommandErrorKind = "no_ref_fetched"
	KindConnection      CommandErrorKind = "connection"
	KindRepoNotFound    CommandErrorKind = "repo_not_found"
	KindIssueNotFound   CommandErrorKind = "issue_not_found"
	KindNotStarted      CommandErrorKind = "not_started"
	KindUnknown         CommandErrorKind = "unknown"
)

// commandErrorMarkers maps a recognized output fragment to its kind.
// Order matters: the first matching marker wins.
var commandErrorMarkers = []struct {
	marker string
	kind   CommandErrorKind
}{
	{"already exists", KindBranchExists},
	{"nothing to commit, working tree clean", KindNothingToCommit},
	{"no such ref was fetched", KindNoRefFetched},
	{"Could not resolve hostname github.com", KindConnection},
	{"Repository not found.", KindRepoNotFound},
	{"Could not resolve to an issue", KindIssueNotFound},
}

// ClassifyCommandOutput returns the error kind for the output of a failed command.
func ClassifyCommandOutput(output string) CommandErrorKind {
	for _, m := range commandErrorMarkers {
		if strings.Contains(output, m.marker) {
			return m.kind
		}
	}
	return KindUnknown
}

// CommandError is returned by the command executor when a command fails.
// Fields are ordered to minimize memory padding.
type CommandError struct {
	Err      error // Underlying process error
	Command  string
	Output   string // Combined stdout and stderr
	Kind     CommandErrorKind
	ExitCode int
}

// Error implements error.
func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, out)
}

// Unwrap returns the sentinel error for the error kind so callers can use errors.Is.
func (e *CommandError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *CommandError) sentinel() error {
	switch e.Kind {
	case KindBranchExists:
		return ErrBranchExists
	case KindNothingToCommit:
		return ErrNothingToCommit
	case KindNoRefFetched:
		return ErrNoRefFetched
	case KindConnection:
		return ErrGitHubConnection
	case KindRepoNotFound:
		return ErrRepoNotFound
	case KindIssueNotFound:
		return ErrIssueNotFound
	case KindNotStarted:
		return ErrCommandNotStarted
	default:
		return ErrUnknownCommand
	}
}
