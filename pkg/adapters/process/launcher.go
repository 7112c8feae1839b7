package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/aretw0/contable/pkg/domain"
	"github.com/aretw0/contable/pkg/ports"
)

// DefaultStopGrace is how long a hosted process gets to exit after an interrupt.
const DefaultStopGrace = 5 * time.Second

// Launcher hosts the application by running an external server process
// (e.g. uvicorn serving "app.main:app").
type Launcher struct {
	server  ProcessConfig
	baseDir string
	stdout  io.Writer
	stderr  io.Writer
	grace   time.Duration
	logger  *slog.Logger
}

// LauncherOption configures the launcher.
type LauncherOption func(*Launcher)

// WithLauncherDir sets the working directory of the server process.
func WithLauncherDir(dir string) LauncherOption {
	return func(l *Launcher) {
		l.baseDir = dir
	}
}

// WithOutput redirects the server's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithStopGrace sets how long to wait after the interrupt before killing the process.
func WithStopGrace(d time.Duration) LauncherOption {
	return func(l *Launcher) {
		l.grace = d
	}
}

// WithLauncherLogger sets the logger.
func WithLauncherLogger(logger *slog.Logger) LauncherOption {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// NewLauncher creates a launcher for the declared server command.
func NewLauncher(server ProcessConfig, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		server: server,
		stdout: os.Stdout,
		stderr: os.Stderr,
		grace:  DefaultStopGrace,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ ports.Launcher = (*Launcher)(nil)
	_ ports.Requirer = (*Launcher)(nil)
)

// Requires returns the server binary, which must be on PATH.
func (l *Launcher) Requires() []string {
	if l.server.Empty() {
		return nil
	}
	return []string{l.server.Command}
}

// Launch starts the server process with target.Env as its whole environment and
// blocks until it exits. Cancelling ctx sends an interrupt and waits for the
// process to stop; that path returns nil.
func (l *Launcher) Launch(ctx context.Context, target domain.LaunchTarget) error {
	if l.server.Empty() {
		return fmt.Errorf("no server command declared: %w", domain.ErrHostingUnavailable)
	}

	cfg := l.server.Expand(map[string]string{
		"host": target.Host,
		"port": strconv.Itoa(target.Port),
		"app":  target.App,
	})

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	cmd.Dir = l.baseDir
	cmd.Env = EnvList(cfg.MergeEnv(target.Env))
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = l.grace

	l.logger.Info("Launching server process", "command", cfg.String(), "host", target.Host, "port", target.Port)

	err := cmd.Run()
	if ctx.Err() != nil {
		l.logger.Info("Server process stopped", "reason", ctx.Err())
		return nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("server process exited with code %d: %w", exitErr.ExitCode(), err)
		}
		return fmt.Errorf("server process: %w", err)
	}
	return nil
}
