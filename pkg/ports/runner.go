package ports

import (
	"context"
)

// CommandResult is the captured outcome of an external command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner executes external commands on behalf of the sequencer.
// A non-zero exit is reported through CommandResult.ExitCode together with a non-nil error.
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string, env map[string]string) (CommandResult, error)
	LookPath(binary string) (string, error)
}

// Prompter asks the operator for a yes/no answer.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}
