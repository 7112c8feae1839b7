package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/contable/pkg/domain"
	"github.com/aretw0/contable/pkg/ports"
)

// ConfirmQuestion is asked when credentials are missing and allow-degraded-start is unset.
const ConfirmQuestion = "¿Continuar sin configuración completa de Azure? (s/n): "

// Sequencer runs the pre-flight checks and, when they allow it, the launcher.
type Sequencer struct {
	cfg      Config
	runner   ports.CommandRunner
	prompter ports.Prompter
	launcher ports.Launcher
	report   *Reporter
	logger   *slog.Logger
	level    *slog.LevelVar
	settings Settings
}

// Option configures the Sequencer.
type Option func(*Sequencer)

// WithRunner sets the runner used for the interpreter version check and installers.
func WithRunner(r ports.CommandRunner) Option {
	return func(s *Sequencer) {
		s.runner = r
	}
}

// WithPrompter sets how the operator is asked for confirmation.
func WithPrompter(p ports.Prompter) Option {
	return func(s *Sequencer) {
		s.prompter = p
	}
}

// WithLauncher sets the hosting facility started at the end of a successful run.
func WithLauncher(l ports.Launcher) Option {
	return func(s *Sequencer) {
		s.launcher = l
	}
}

// WithReporter sets the progress output.
func WithReporter(r *Reporter) Option {
	return func(s *Sequencer) {
		s.report = r
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithLevel lets the loaded LOG_LEVEL and DEBUG settings adjust level once
// the environment is read.
func WithLevel(level *slog.LevelVar) Option {
	return func(s *Sequencer) {
		s.level = level
	}
}

// New creates a Sequencer. Without a prompter every confirmation is refused.
func New(cfg Config, opts ...Option) *Sequencer {
	s := &Sequencer{
		cfg:      cfg,
		prompter: nonInteractive{},
		report:   NewPlainReporter(io.Discard),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check runs steps 1 to 5 and returns the outcome and the loaded environment.
// A non-nil error is fatal (see domain.IsFatal); missing credentials are not an error.
func (s *Sequencer) Check(ctx context.Context) (*domain.BootstrapOutcome, Environment, error) {
	out := &domain.BootstrapOutcome{}

	if err := s.checkInterpreterVersion(ctx, out); err != nil {
		out.Abort(err.Error())
		return out, nil, err
	}
	s.ensureConfigFile(out)
	if err := s.installDependencies(ctx, out); err != nil {
		out.Abort(err.Error())
		return out, nil, err
	}
	env := s.loadEnvironment()
	s.checkCredentials(out, env)

	return out, env, nil
}

// Run executes the whole sequence. It returns when the sequence aborts or the
// launched server stops. Operator refusal is an abort with a nil error.
func (s *Sequencer) Run(ctx context.Context) (*domain.BootstrapOutcome, error) {
	out, env, err := s.Check(ctx)
	if err != nil {
		return out, err
	}

	if !out.CredentialsOK {
		proceed, reason := s.confirmOrAbort(ctx)
		if !proceed {
			out.Abort(reason)
			s.logger.Info("Bootstrap aborted", "reason", reason)
			return out, nil
		}
	}

	out.Proceed()
	s.report.Rule()

	if err := s.ensureHosting(ctx); err != nil {
		out.Abort(err.Error())
		return out, err
	}

	return out, s.startServer(ctx, out, env)
}

func (s *Sequencer) checkInterpreterVersion(ctx context.Context, out *domain.BootstrapOutcome) error {
	interp := s.cfg.Manifest.Interpreter
	if interp.Empty() {
		out.InterpreterOK = true
		s.logger.Debug("No interpreter declared, skipping version check")
		return nil
	}
	if s.runner == nil {
		return fmt.Errorf("%w: no command runner configured", domain.ErrInterpreterUnavailable)
	}

	res, err := s.runner.Run(ctx, interp.Command, interp.Args, s.cfg.ProcessEnv)
	if err != nil {
		s.report.Fail("Error: no se pudo ejecutar %s", interp.Command)
		return fmt.Errorf("%w: %v", domain.ErrInterpreterUnavailable, err)
	}

	// Older interpreters print their version on stderr.
	version, err := ParseVersion(res.Stdout + " " + res.Stderr)
	if err != nil {
		s.report.Fail("Error: versión de %s desconocida", interp.Command)
		return fmt.Errorf("%w: %v", domain.ErrInterpreterUnavailable, err)
	}
	out.InterpreterVersion = version

	if interp.MinVersion != "" {
		ok, err := AtLeast(version, interp.MinVersion)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInterpreterUnavailable, err)
		}
		if !ok {
			s.report.Fail("Error: Se requiere %s %s o superior", interp.Command, interp.MinVersion)
			s.report.Info("", "Versión actual: %s", version)
			return fmt.Errorf("%w: found %s, need %s", domain.ErrInterpreterTooOld, version, interp.MinVersion)
		}
	}

	out.InterpreterOK = true
	s.report.OK("%s %s - OK", interp.Command, version)
	return nil
}

func (s *Sequencer) ensureConfigFile(out *domain.BootstrapOutcome) {
	envPath := s.cfg.EnvFilePath()
	state, err := EnsureConfigFile(envPath, s.cfg.EnvTemplatePath())
	if err != nil {
		s.report.Warn("No se pudo preparar %s: %v", s.cfg.Manifest.EnvFile, err)
		s.logger.Warn("EnsureConfigFile failed", "path", envPath, "error", err)
		return
	}

	switch state {
	case EnvFileCreated:
		out.EnvFileReady = true
		out.EnvFileCreated = true
		s.report.Info(GlyphWrite, "Archivo %s creado desde %s", s.cfg.Manifest.EnvFile, s.cfg.Manifest.EnvTemplate)
		s.report.Warn("IMPORTANTE: Configure las variables de Azure en %s para funcionalidad completa", s.cfg.Manifest.EnvFile)
	case EnvFileExisted:
		out.EnvFileReady = true
		s.report.OK("Archivo %s existe", s.cfg.Manifest.EnvFile)
	case EnvFileMissing:
		s.report.Warn("Ni %s ni %s existen, se usará solo el entorno del proceso", s.cfg.Manifest.EnvFile, s.cfg.Manifest.EnvTemplate)
	}
}

func (s *Sequencer) installDependencies(ctx context.Context, out *domain.BootstrapOutcome) error {
	install := s.cfg.Manifest.Install
	if install.Empty() {
		out.DependenciesOK = true
		return nil
	}
	if s.runner == nil {
		return fmt.Errorf("%w: no command runner configured", domain.ErrDependencyInstall)
	}

	s.report.Info(GlyphPackage, "Instalando dependencias...")
	res, err := s.runner.Run(ctx, install.Command, install.Args, install.MergeEnv(s.cfg.ProcessEnv))
	if err != nil {
		s.report.Fail("Error instalando dependencias: %v", err)
		if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
			s.report.Info("", "Salida del error: %s", stderr)
		}
		s.report.Fail("Fallo en instalación de dependencias")
		return fmt.Errorf("%w: %s (exit %d)", domain.ErrDependencyInstall, install.String(), res.ExitCode)
	}

	out.DependenciesOK = true
	s.report.OK("Dependencias instaladas")
	return nil
}

func (s *Sequencer) loadEnvironment() Environment {
	envPath := s.cfg.EnvFilePath()
	env, err := LoadEnvironment(envPath, s.cfg.ProcessEnv)
	if err != nil {
		s.report.Warn("No se pudo leer %s: %v", s.cfg.Manifest.EnvFile, err)
		s.logger.Warn("LoadEnvironment failed", "path", envPath, "error", err)
		s.applySettings(env)
		return env
	}
	s.applySettings(env)
	s.report.OK("Variables de entorno cargadas")
	return env
}

func (s *Sequencer) applySettings(env Environment) {
	settings, err := env.Settings()
	if err != nil {
		s.logger.Warn("Settings decode failed", "error", err)
	}
	s.settings = settings
	if s.level != nil {
		s.level.Set(settings.Level(s.level.Level()))
	}
	s.logger.Debug("Environment loaded", "variables", len(env), "log_level", s.settings.LogLevel, "azure_configured", s.settings.AzureConfigured())
}

// Settings returns the typed settings decoded by the last Check or Run.
func (s *Sequencer) Settings() Settings {
	return s.settings
}

func (s *Sequencer) checkCredentials(out *domain.BootstrapOutcome, env Environment) {
	missing := env.Missing(s.cfg.Manifest.Credentials)
	out.MissingCredentials = missing
	if len(missing) == 0 {
		out.CredentialsOK = true
		s.report.OK("Configuración de Azure - OK")
		return
	}

	s.report.Warn("Variables de Azure faltantes (funcionalidad limitada):")
	for _, name := range missing {
		s.report.Item("%s", name)
	}
	s.report.Info(GlyphHint, "Configure estas variables en %s para funcionalidad completa de IA", s.cfg.Manifest.EnvFile)
}

func (s *Sequencer) confirmOrAbort(ctx context.Context) (bool, string) {
	if allow, set := s.cfg.AllowDegradedStart.Get(); set {
		if allow {
			s.logger.Info("Continuing without credentials", "allow_degraded_start", true)
			return true, ""
		}
		return false, "allow-degraded-start is false"
	}

	ok, err := s.prompter.Confirm(ctx, ConfirmQuestion)
	if err != nil {
		if errors.Is(err, domain.ErrNotInteractive) {
			s.report.Info(GlyphHint, "Use --allow-degraded-start para continuar sin terminal")
		}
		return false, err.Error()
	}
	if !ok {
		return false, "operator declined"
	}
	return true, ""
}

// ensureHosting checks that the launcher's binaries are installed. With
// AutoInstall a missing requirement is installed once and checked once more.
func (s *Sequencer) ensureHosting(ctx context.Context) error {
	req, ok := s.launcher.(ports.Requirer)
	if !ok {
		return nil
	}
	if s.runner == nil {
		return fmt.Errorf("%w: no command runner configured", domain.ErrHostingUnavailable)
	}

	for _, binary := range req.Requires() {
		if _, err := s.runner.LookPath(binary); err == nil {
			continue
		}

		decl, declared := s.cfg.Manifest.Requirement(binary)
		if declared && s.cfg.Manifest.AutoInstall && !decl.Install.Empty() {
			s.report.Fail("%s no encontrado, intentando instalación...", binary)
			if _, err := s.runner.Run(ctx, decl.Install.Command, decl.Install.Args, decl.Install.MergeEnv(s.cfg.ProcessEnv)); err != nil {
				s.logger.Warn("Requirement install failed", "binary", binary, "error", err)
			}
			if _, err := s.runner.LookPath(binary); err == nil {
				s.report.OK("%s instalado", binary)
				continue
			}
		}

		s.report.Fail("%s no encontrado", binary)
		if declared && decl.Hint != "" {
			s.report.Info(GlyphHint, "Instale con: %s", decl.Hint)
		}
		return fmt.Errorf("%w: %s not found on PATH", domain.ErrHostingUnavailable, binary)
	}
	return nil
}

func (s *Sequencer) startServer(ctx context.Context, out *domain.BootstrapOutcome, env Environment) error {
	if s.launcher == nil {
		return fmt.Errorf("%w: no launcher configured", domain.ErrHostingUnavailable)
	}

	target := domain.LaunchTarget{
		Host: s.cfg.BindHost(),
		Port: s.cfg.BindPort(),
		App:  s.cfg.Manifest.App,
		Env:  env,
	}

	s.report.Info(GlyphLaunch, "Iniciando servidor...")
	s.report.Info(GlyphPin, "Servidor disponible en: http://%s:%d", target.Host, target.Port)
	s.report.Info(GlyphStop, "Presiona Ctrl+C para detener")

	out.Terminal = domain.TerminalRunning
	err := s.launcher.Launch(ctx, target)
	if ctx.Err() != nil {
		s.report.Info(GlyphBye, "Servidor detenido")
		return nil
	}
	if err != nil {
		s.report.Fail("Error del servidor: %v", err)
		return err
	}
	return nil
}
