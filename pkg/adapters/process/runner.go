package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/aretw0/contable/pkg/ports"
)

// Runner implements ports.CommandRunner by executing local processes.
// The caller passes the complete environment; nothing is inherited implicitly.
type Runner struct {
	baseDir  string
	lookPath func(string) (string, error)
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithLookPath overrides binary resolution (defaults to exec.LookPath).
func WithLookPath(fn func(string) (string, error)) RunnerOption {
	return func(r *Runner) {
		r.lookPath = fn
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.CommandRunner = (*Runner)(nil)

// Run executes command and captures its output. A non-zero exit yields an error
// wrapping *exec.ExitError and the exit code in the result.
func (r *Runner) Run(ctx context.Context, command string, args []string, env map[string]string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.baseDir
	if env != nil {
		cmd.Env = EnvList(env)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result, fmt.Errorf("%s: %w", command, err)
	}
	return result, nil
}

// LookPath resolves a binary on PATH.
func (r *Runner) LookPath(binary string) (string, error) {
	return r.lookPath(binary)
}
