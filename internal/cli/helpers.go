package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/contable/internal/logging"
	"github.com/aretw0/contable/pkg/adapters/process"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
			// Context cancelled elsewhere
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// IO bundles the streams a command talks to the operator on.
type IO struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

// StdIO is the process's own standard streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// createLogger configures the application logger on w.
// Debug wins over LOG_LEVEL; without either, Info and above are logged. The
// returned LevelVar lets settings loaded later adjust the level; it is nil
// when --debug fixed it.
func createLogger(w io.Writer, debug bool, levelName string) (*slog.Logger, *slog.LevelVar) {
	if w == nil {
		return logging.NewNop(), nil
	}
	if debug {
		return logging.NewWithWriter(w, slog.LevelDebug), nil
	}
	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(levelName, slog.LevelInfo))
	return logging.NewWithWriter(w, level), level
}

// logStopped records why ctx ended, naming the signal when a SignalContext caught one.
func logStopped(logger *slog.Logger, ctx context.Context) {
	if sc, ok := ctx.(*SignalContext); ok {
		if sig := sc.Signal(); sig != nil {
			logger.Info("Stopped by signal", "signal", sig.String())
			return
		}
	}
	if err := ctx.Err(); err != nil {
		logger.Info("Stopped", "reason", err)
	}
}

// processEnv snapshots the process environment.
func processEnv() map[string]string {
	return process.EnvMap(os.Environ())
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if isInterrupted(err) {
		return nil
	}
	return err
}
