package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	httpadapter "github.com/aretw0/contable/pkg/adapters/http"
	"github.com/aretw0/contable/pkg/adapters/process"
	"github.com/aretw0/contable/pkg/bootstrap"
	"github.com/aretw0/contable/pkg/domain"
	"github.com/aretw0/contable/pkg/ports"
)

// StartOptions contains the configuration for the start and check commands.
type StartOptions struct {
	Dir          string
	ManifestPath string

	AllowDegradedStart bootstrap.OptionalBool

	// Minimal hosts the built-in API instead of the manifest's server command.
	Minimal bool

	Host        string
	Port        int
	MetricsAddr string
	Debug       bool
}

// loadConfig resolves the manifest and flag overrides into a bootstrap Config.
func loadConfig(opts StartOptions, env map[string]string) (bootstrap.Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(dir, bootstrap.DefaultManifestFile)
	}
	manifest, err := bootstrap.LoadManifest(manifestPath)
	if err != nil {
		return bootstrap.Config{}, err
	}

	cfg := bootstrap.NewConfig(dir, manifest, env)
	cfg.Host = opts.Host
	cfg.Port = opts.Port
	cfg.AllowDegradedStart = opts.AllowDegradedStart
	return cfg, nil
}

// azureConfigured decodes the launch environment and reports whether every
// Azure credential is set.
func azureConfigured(env map[string]string) bool {
	settings, _ := bootstrap.Environment(env).Settings()
	return settings.AzureConfigured()
}

func newLauncher(opts StartOptions, cfg bootstrap.Config, streams IO, logger *slog.Logger) ports.Launcher {
	if opts.Minimal {
		return httpadapter.NewLauncher(
			httpadapter.WithAzureCheck(azureConfigured),
			httpadapter.WithMetricsAddr(opts.MetricsAddr),
			httpadapter.WithBanner(streams.Out),
			httpadapter.WithLauncherLogger(logger),
		)
	}
	if opts.MetricsAddr != "" {
		logger.Warn("--metrics-addr only applies to the built-in server", "addr", opts.MetricsAddr)
	}
	return process.NewLauncher(cfg.Manifest.Server,
		process.WithLauncherDir(cfg.Dir),
		process.WithOutput(streams.Out, streams.Err),
		process.WithLauncherLogger(logger),
	)
}

func printHeader(report *bootstrap.Reporter, cfg bootstrap.Config) {
	report.Info(bootstrap.GlyphSetup, "Inicializando backend con Azure AI...")
	report.Rule()
	report.Info(bootstrap.GlyphDir, "Directorio de trabajo: %s", cfg.Dir)
}

// Start runs the bootstrap sequence and, if it clears, the server. Aborting
// on the operator's choice and interrupting the server are not errors.
func Start(ctx context.Context, opts StartOptions, streams IO) error {
	env := processEnv()
	logger, level := createLogger(streams.Err, opts.Debug, env["LOG_LEVEL"])
	report := bootstrap.NewReporter(streams.Out)

	cfg, err := loadConfig(opts, env)
	if err != nil {
		return err
	}
	logger.Debug("Configuration resolved",
		"dir", cfg.Dir,
		"host", cfg.BindHost(),
		"port", cfg.BindPort(),
		"allow_degraded_start", cfg.AllowDegradedStart.String(),
		"minimal", opts.Minimal,
	)

	printHeader(report, cfg)

	seq := bootstrap.New(cfg,
		bootstrap.WithRunner(process.NewRunner(process.WithBaseDir(cfg.Dir))),
		bootstrap.WithPrompter(bootstrap.NewTerminalPrompter(streams.In, streams.Out)),
		bootstrap.WithLauncher(newLauncher(opts, cfg, streams, logger)),
		bootstrap.WithReporter(report),
		bootstrap.WithLogger(logger),
		bootstrap.WithLevel(level),
	)

	out, err := seq.Run(ctx)
	if out != nil && out.Terminal == domain.TerminalRunning {
		logStopped(logger, ctx)
	}
	return finish(report, out, err)
}

func finish(report *bootstrap.Reporter, out *domain.BootstrapOutcome, err error) error {
	if err != nil {
		if isInterrupted(err) {
			return nil
		}
		return err
	}
	if out.Aborted() {
		report.Info(bootstrap.GlyphBye, "Configure Azure y ejecute nuevamente")
	}
	return nil
}

// Check runs the pre-flight steps without prompting or launching and prints
// the outcome. Only fatal steps produce an error.
func Check(ctx context.Context, opts StartOptions, streams IO, jsonOut bool) error {
	env := processEnv()
	logger, level := createLogger(streams.Err, opts.Debug, env["LOG_LEVEL"])

	cfg, err := loadConfig(opts, env)
	if err != nil {
		return err
	}

	progress := io.Writer(streams.Out)
	if jsonOut {
		progress = io.Discard
	}
	report := bootstrap.NewReporter(progress)
	printHeader(report, cfg)

	seq := bootstrap.New(cfg,
		bootstrap.WithRunner(process.NewRunner(process.WithBaseDir(cfg.Dir))),
		bootstrap.WithReporter(report),
		bootstrap.WithLogger(logger),
		bootstrap.WithLevel(level),
	)
	out, _, checkErr := seq.Check(ctx)

	if jsonOut {
		if err := writeJSON(streams.Out, out); err != nil {
			return err
		}
	} else {
		report.Rule()
		printOutcome(report, out)
	}

	return handleExecutionError(checkErr)
}

func printOutcome(report *bootstrap.Reporter, out *domain.BootstrapOutcome) {
	mark := func(ok bool) string {
		if ok {
			return bootstrap.GlyphOK
		}
		return bootstrap.GlyphFail
	}
	report.Info(mark(out.InterpreterOK), "interpreter_ok=%t %s", out.InterpreterOK, out.InterpreterVersion)
	report.Info(mark(out.EnvFileReady), "env_file_ready=%t", out.EnvFileReady)
	report.Info(mark(out.DependenciesOK), "dependencies_ok=%t", out.DependenciesOK)
	report.Info(mark(out.CredentialsOK), "credentials_ok=%t", out.CredentialsOK)
	if out.Aborted() {
		report.Info("", "decision=%s reason=%q", out.Decision, out.Reason)
	}
}
