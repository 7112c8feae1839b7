package cli

import (
	"context"
	"path/filepath"

	httpadapter "github.com/aretw0/contable/pkg/adapters/http"
	"github.com/aretw0/contable/pkg/bootstrap"
	"github.com/aretw0/contable/pkg/domain"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Dir         string
	EnvFile     string
	Host        string
	Port        int
	MetricsAddr string
	Debug       bool
}

// Serve hosts the minimal-mode API without running the bootstrap checks.
// Credentials are looked up in the process environment and EnvFile.
func Serve(ctx context.Context, opts ServeOptions, streams IO) error {
	env := processEnv()
	logger, level := createLogger(streams.Err, opts.Debug, env["LOG_LEVEL"])

	envPath := opts.EnvFile
	if envPath != "" && !filepath.IsAbs(envPath) && opts.Dir != "" {
		envPath = filepath.Join(opts.Dir, envPath)
	}
	loaded, err := bootstrap.LoadEnvironment(envPath, env)
	if err != nil {
		logger.Warn("Could not read env file", "path", envPath, "error", err)
	}
	settings, err := loaded.Settings()
	if err != nil {
		logger.Warn("Settings decode failed", "error", err)
	}
	if level != nil {
		level.Set(settings.Level(level.Level()))
	}
	logger.Debug("Environment loaded", "path", envPath, "azure_configured", settings.AzureConfigured())

	launcher := httpadapter.NewLauncher(
		httpadapter.WithAzureCheck(azureConfigured),
		httpadapter.WithMetricsAddr(opts.MetricsAddr),
		httpadapter.WithBanner(streams.Out),
		httpadapter.WithLauncherLogger(logger),
	)

	err = launcher.Launch(ctx, domain.LaunchTarget{
		Host: opts.Host,
		Port: opts.Port,
		Env:  loaded,
	})
	if err == nil && ctx.Err() != nil {
		logStopped(logger, ctx)
		printSystemMessage(streams.Out, "Server stopped")
	}
	return handleExecutionError(err)
}
