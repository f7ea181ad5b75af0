package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes a command and returns its captured stderr
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
	// CombinedOutput executes a command and returns stdout and stderr interleaved
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command and returns any error along with its stderr
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// CombinedOutput executes a command and returns its combined output
func (r *ExecCommandRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// exitStatus reports the exit code of a process that was started. The code
// is -1 when the process was killed by a signal. ok is false when the error
// does not come from a started process. *exec.ExitError satisfies the interface.
func exitStatus(err error) (code int, ok bool) {
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
