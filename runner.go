package syntree

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/alnah/go-syntree/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Arguments are passed as a vector; no shell is involved.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group; cancelling ctx kills the group.
type ExecRunner struct{}

// Compile-time interface check.
var _ CommandRunner = (*ExecRunner)(nil)

// Run starts name with args and waits for it to exit.
// err is non-nil when the process cannot start, exits non-zero, or is
// killed because ctx ended.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- argv only, never a shell string

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}
