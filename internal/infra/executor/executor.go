// Package executor provides command execution functionality.
package executor

import (
	"context"
	"errors"
	"os/exec"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
)

// Client implements domain.CommandExecutor interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its combined output.
// A failed command is returned as a classified *domain.CommandError.
func (c *Client) Execute(ctx context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	log := clog.FromContext(ctx).With("command", cmd.String())
	log.Debug("running command", "dir", cmd.Dir)

	// #nosec G204 - cmd.Program and cmd.Args come from trusted gateway code
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	out, err := execCmd.CombinedOutput()
	if err == nil {
		return out, nil
	}

	cmdErr := &domain.CommandError{
		Err:      err,
		Command:  cmd.String(),
		Output:   string(out),
		Kind:     domain.ClassifyCommandOutput(string(out)),
		ExitCode: -1,
	}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		cmdErr.ExitCode = exitErr.ExitCode()
	case cmdErr.Kind == domain.KindUnknown:
		cmdErr.Kind = domain.KindNotStarted
	}
	log.Debug("command failed", "kind", cmdErr.Kind, "exit_code", cmdErr.ExitCode)
	return out, cmdErr
}
