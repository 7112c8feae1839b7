package domain

// Decision is the terminal verdict of a bootstrap run.
type Decision string

const (
	DecisionPending Decision = ""
	DecisionProceed Decision = "proceed"
	DecisionAbort   Decision = "abort"
)

// Terminal is the state a bootstrap run ends in.
type Terminal string

const (
	TerminalNone    Terminal = ""
	TerminalAborted Terminal = "aborted"
	TerminalRunning Terminal = "running"
)

// BootstrapOutcome accumulates the result of each pre-flight check.
// It only lives for the duration of one run.
type BootstrapOutcome struct {
	InterpreterOK  bool `json:"interpreter_ok"`
	EnvFileReady   bool `json:"env_file_ready"`
	DependenciesOK bool `json:"dependencies_ok"`
	CredentialsOK  bool `json:"credentials_ok"`

	// InterpreterVersion is the version string reported by the interpreter, if one was checked.
	InterpreterVersion string `json:"interpreter_version,omitempty"`

	// EnvFileCreated is true when the run synthesized the configuration file.
	EnvFileCreated bool `json:"env_file_created"`

	MissingCredentials []string `json:"missing_credentials,omitempty"`

	Decision Decision `json:"decision"`
	Terminal Terminal `json:"terminal,omitempty"`

	// Reason explains an abort.
	Reason string `json:"reason,omitempty"`
}

// Abort marks the outcome as aborted.
func (o *BootstrapOutcome) Abort(reason string) {
	o.Decision = DecisionAbort
	o.Terminal = TerminalAborted
	o.Reason = reason
}

// Proceed marks the outcome as cleared to launch.
func (o *BootstrapOutcome) Proceed() {
	o.Decision = DecisionProceed
}

// Aborted reports whether the run ended without starting a server.
func (o *BootstrapOutcome) Aborted() bool {
	return o.Decision == DecisionAbort
}

// LaunchTarget is what a hosting facility needs to serve the application:
// where to bind and the environment to run with.
type LaunchTarget struct {
	Host string
	Port int
	// App names the application object for external hosts (e.g. "app.main:app").
	App string
	// Env is the fully resolved environment. Launchers must use it instead of
	// the ambient process environment.
	Env map[string]string
}
