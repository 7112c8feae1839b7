package bootstrap

import (
	"path/filepath"
	"strconv"
)

// OptionalBool is a tri-state flag: unset, true or false.
type OptionalBool struct {
	value bool
	set   bool
}

// Set returns an OptionalBool holding v.
func Set(v bool) OptionalBool {
	return OptionalBool{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o OptionalBool) Get() (bool, bool) {
	return o.value, o.set
}

func (o OptionalBool) String() string {
	if !o.set {
		return "unset"
	}
	return strconv.FormatBool(o.value)
}

// Config is everything a bootstrap run needs, resolved up front.
type Config struct {
	// Dir is the project directory; relative paths are resolved against it.
	Dir string

	Manifest Manifest

	// Host and Port override the manifest when non-zero.
	Host string
	Port int

	// AllowDegradedStart decides what happens when credentials are missing.
	// Unset means ask the operator.
	AllowDegradedStart OptionalBool

	// ProcessEnv is the snapshot of the process environment the run starts from.
	ProcessEnv map[string]string
}

// NewConfig returns a Config for dir using the given manifest.
func NewConfig(dir string, manifest Manifest, processEnv map[string]string) Config {
	if dir == "" {
		dir = "."
	}
	if processEnv == nil {
		processEnv = map[string]string{}
	}
	return Config{
		Dir:        dir,
		Manifest:   manifest,
		ProcessEnv: processEnv,
	}
}

// Path resolves p against Dir.
func (c Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// EnvFilePath is the local configuration file.
func (c Config) EnvFilePath() string {
	return c.Path(c.Manifest.EnvFile)
}

// EnvTemplatePath is the template the configuration file is synthesized from.
func (c Config) EnvTemplatePath() string {
	return c.Path(c.Manifest.EnvTemplate)
}

// BindHost returns the effective host.
func (c Config) BindHost() string {
	if c.Host != "" {
		return c.Host
	}
	return c.Manifest.Host
}

// BindPort returns the effective port.
func (c Config) BindPort() int {
	if c.Port != 0 {
		return c.Port
	}
	return c.Manifest.Port
}
