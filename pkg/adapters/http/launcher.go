package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/aretw0/contable/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// Launcher hosts the minimal-mode API in-process.
type Launcher struct {
	azureCheck  func(env map[string]string) bool
	metricsAddr string
	out         io.Writer
	logger      *slog.Logger
	onListen    func(addr net.Addr)
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithAzureCheck decides trace.azure_configured from the launch environment.
func WithAzureCheck(fn func(env map[string]string) bool) LauncherOption {
	return func(l *Launcher) {
		l.azureCheck = fn
	}
}

// WithMetricsAddr serves /metrics on a second listener at addr.
func WithMetricsAddr(addr string) LauncherOption {
	return func(l *Launcher) {
		l.metricsAddr = addr
	}
}

// WithBanner sets where the startup banner is printed.
func WithBanner(w io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.out = w
	}
}

// WithLauncherLogger sets the logger for the API and metrics servers.
func WithLauncherLogger(logger *slog.Logger) LauncherOption {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// WithOnListen is called with the bound API address before serving starts.
func WithOnListen(fn func(addr net.Addr)) LauncherOption {
	return func(l *Launcher) {
		l.onListen = fn
	}
}

// NewLauncher creates a Launcher. Without WithAzureCheck chat traces report false.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{
		out:    io.Discard,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch binds target.Host:target.Port and serves until ctx is cancelled.
func (l *Launcher) Launch(ctx context.Context, target domain.LaunchTarget) error {
	azure := false
	if l.azureCheck != nil {
		azure = l.azureCheck(target.Env)
	}

	var metrics *Metrics
	if l.metricsAddr != "" {
		metrics = NewMetrics()
	}
	handler := NewHandler(
		WithAzureConfigured(azure),
		WithLogger(l.logger),
		WithMetrics(metrics),
	)

	addr := net.JoinHostPort(target.Host, strconv.Itoa(target.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if l.onListen != nil {
		l.onListen(ln.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	if metrics != nil {
		mln, err := net.Listen("tcp", l.metricsAddr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("listen metrics %s: %w", l.metricsAddr, err)
		}
		g.Go(func() error {
			return ServeMetrics(gctx, mln, metrics, l.logger)
		})
		l.logger.Info("Metrics listener started", "addr", mln.Addr().String())
	}

	l.printBanner(ln.Addr(), azure)
	g.Go(func() error {
		return Serve(gctx, ln, handler, l.logger)
	})
	return g.Wait()
}

func (l *Launcher) printBanner(addr net.Addr, azure bool) {
	fmt.Fprintf(l.out, "🚀 Servidor minimal iniciando en http://%s\n", addr)
	fmt.Fprintln(l.out, "📄 Endpoint: POST /process-invoice/")
	fmt.Fprintln(l.out, "💬 Endpoint: POST /chat-json/")
	if azure {
		fmt.Fprintln(l.out, "🔧 Modo: Básico (Azure configurado, no utilizado)")
	} else {
		fmt.Fprintln(l.out, "🔧 Modo: Básico (sin dependencias Azure)")
	}
}
