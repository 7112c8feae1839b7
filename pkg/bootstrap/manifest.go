package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/contable/pkg/adapters/process"
	"gopkg.in/yaml.v3"
)

// DefaultManifestFile is looked up in the project directory.
const DefaultManifestFile = "contable.yaml"

// Interpreter declares the runtime the full backend needs.
type Interpreter struct {
	process.ProcessConfig `yaml:",inline"`
	MinVersion            string `yaml:"min_version" json:"min_version"`
}

// Requirement is a binary the hosting facility needs on PATH.
type Requirement struct {
	Name    string                `yaml:"name" json:"name"`
	Binary  string                `yaml:"binary" json:"binary"`
	Install process.ProcessConfig `yaml:"install,omitempty" json:"install,omitempty"`
	Hint    string                `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Manifest declares how to check, prepare and launch the full backend.
type Manifest struct {
	Interpreter Interpreter           `yaml:"interpreter" json:"interpreter"`
	Install     process.ProcessConfig `yaml:"install" json:"install"`
	Server      process.ProcessConfig `yaml:"server" json:"server"`
	App         string                `yaml:"app" json:"app"`
	Requires    []Requirement         `yaml:"requires" json:"requires"`

	// AutoInstall permits installing a missing requirement once before giving up.
	AutoInstall bool `yaml:"auto_install" json:"auto_install"`

	EnvFile     string   `yaml:"env_file" json:"env_file"`
	EnvTemplate string   `yaml:"env_template" json:"env_template"`
	Host        string   `yaml:"host" json:"host"`
	Port        int      `yaml:"port" json:"port"`
	Credentials []string `yaml:"credentials" json:"credentials"`
}

// RequiredCredentials are the variables needed to reach the Azure OpenAI and Azure Search services.
var RequiredCredentials = []string{
	"AZURE_OPENAI_ENDPOINT",
	"AZURE_OPENAI_API_KEY",
	"AZURE_SEARCH_ENDPOINT",
	"AZURE_SEARCH_API_KEY",
}

// DefaultManifest describes the Python/FastAPI backend.
func DefaultManifest() Manifest {
	return Manifest{
		Interpreter: Interpreter{
			ProcessConfig: process.ProcessConfig{Command: "python3", Args: []string{"--version"}},
			MinVersion:    "3.8",
		},
		Install: process.ProcessConfig{
			Command: "python3",
			Args:    []string{"-m", "pip", "install", "-r", "requirements.txt"},
		},
		Server: process.ProcessConfig{
			Command: "uvicorn",
			Args:    []string{"{app}", "--host", "{host}", "--port", "{port}", "--reload"},
		},
		App: "app.main:app",
		Requires: []Requirement{
			{
				Name:    "uvicorn",
				Binary:  "uvicorn",
				Install: process.ProcessConfig{Command: "python3", Args: []string{"-m", "pip", "install", "uvicorn[standard]"}},
				Hint:    "python3 -m pip install 'uvicorn[standard]'",
			},
		},
		EnvFile:     ".env",
		EnvTemplate: "env.example",
		Host:        "127.0.0.1",
		Port:        8000,
		Credentials: append([]string(nil), RequiredCredentials...),
	}
}

// LoadManifest reads a YAML or JSON manifest. Fields left out keep their defaults.
// A missing file yields DefaultManifest.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := m.validate(); err != nil {
		return m, fmt.Errorf("invalid manifest %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

func (m Manifest) validate() error {
	if m.Port < 0 || m.Port > 65535 {
		return fmt.Errorf("port %d out of range", m.Port)
	}
	if !m.Interpreter.Empty() && m.Interpreter.MinVersion != "" {
		if _, err := canonicalVersion(m.Interpreter.MinVersion); err != nil {
			return fmt.Errorf("min_version: %w", err)
		}
	}
	for _, r := range m.Requires {
		if r.Binary == "" {
			return fmt.Errorf("requirement %q has no binary", r.Name)
		}
	}
	return nil
}

// Requirement returns the declared requirement for binary, if any.
func (m Manifest) Requirement(binary string) (Requirement, bool) {
	for _, r := range m.Requires {
		if r.Binary == binary {
			return r, true
		}
	}
	return Requirement{}, false
}
