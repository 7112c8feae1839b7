package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

// ShutdownTimeout bounds the graceful stop before connections are closed.
const ShutdownTimeout = 5 * time.Second

// Serve handles connections from ln until ctx is cancelled. Only one connection
// is accepted at a time and keep-alives are off, so requests are handled
// one by one in arrival order.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.SetKeepAlivesEnabled(false)
	return serve(ctx, srv, netutil.LimitListener(ln, 1), logger)
}

// ServeMetrics exposes m on its own listener until ctx is cancelled.
func ServeMetrics(ctx context.Context, ln net.Listener, m *Metrics, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, ln, logger)
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Debug("Shutting down listener", "addr", ln.Addr().String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown failed, closing", "error", err)
		_ = srv.Close()
	}
	<-errCh
	return nil
}
