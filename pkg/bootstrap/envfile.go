package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/contable/internal/logging"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// DevDefaults is appended to the template when the configuration file is synthesized.
const DevDefaults = `
# ============================================================================
# VALORES POR DEFECTO PARA DESARROLLO LOCAL
# ============================================================================
DEBUG=True
LOG_LEVEL=INFO
`

// EnvFileState is the result of EnsureConfigFile.
type EnvFileState int

const (
	// EnvFileExisted means the configuration file was already there and was left untouched.
	EnvFileExisted EnvFileState = iota
	// EnvFileCreated means the file was synthesized from the template.
	EnvFileCreated
	// EnvFileMissing means neither the file nor its template exist.
	EnvFileMissing
)

// EnsureConfigFile synthesizes envPath from templatePath plus DevDefaults when
// envPath does not exist. An existing file is never modified.
func EnsureConfigFile(envPath, templatePath string) (EnvFileState, error) {
	if _, err := os.Stat(envPath); err == nil {
		return EnvFileExisted, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return EnvFileMissing, fmt.Errorf("stat %s: %w", envPath, err)
	}

	template, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return EnvFileMissing, nil
		}
		return EnvFileMissing, fmt.Errorf("read template: %w", err)
	}

	content := string(template) + DevDefaults

	// O_EXCL keeps a file created concurrently by someone else intact.
	f, err := os.OpenFile(envPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return EnvFileExisted, nil
		}
		return EnvFileMissing, fmt.Errorf("create %s: %w", envPath, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return EnvFileMissing, fmt.Errorf("write %s: %w", envPath, err)
	}
	if err := f.Close(); err != nil {
		return EnvFileMissing, fmt.Errorf("close %s: %w", envPath, err)
	}
	return EnvFileCreated, nil
}

// Environment is the resolved set of variables the backend will run with.
type Environment map[string]string

// LoadEnvironment reads envPath and layers it under base: a variable already in
// base keeps its value. A missing file yields a copy of base.
func LoadEnvironment(envPath string, base map[string]string) (Environment, error) {
	env := make(Environment, len(base))
	for k, v := range base {
		env[k] = v
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return env, fmt.Errorf("load %s: %w", envPath, err)
	}

	for k, v := range values {
		if _, exists := env[k]; !exists {
			env[k] = v
		}
	}
	return env, nil
}

// Missing returns the names whose value is absent or blank, in the given order.
func (e Environment) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(e[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Keys returns the variable names, sorted.
func (e Environment) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings are the typed values the backend reads from its environment.
type Settings struct {
	Debug               bool   `mapstructure:"DEBUG"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
	AzureOpenAIEndpoint string `mapstructure:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIAPIKey   string `mapstructure:"AZURE_OPENAI_API_KEY"`
	AzureSearchEndpoint string `mapstructure:"AZURE_SEARCH_ENDPOINT"`
	AzureSearchAPIKey   string `mapstructure:"AZURE_SEARCH_API_KEY"`
}

// AzureConfigured reports whether every Azure credential is present and non-blank.
func (s Settings) AzureConfigured() bool {
	for _, v := range []string{s.AzureOpenAIEndpoint, s.AzureOpenAIAPIKey, s.AzureSearchEndpoint, s.AzureSearchAPIKey} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Level is the log level the settings ask for. LOG_LEVEL wins; otherwise
// DEBUG=true means debug and anything else keeps def.
func (s Settings) Level(def slog.Level) slog.Level {
	if strings.TrimSpace(s.LogLevel) != "" {
		return logging.ParseLevel(s.LogLevel, def)
	}
	if s.Debug {
		return slog.LevelDebug
	}
	return def
}

// Settings decodes the known variables. Unknown variables are ignored;
// DEBUG accepts anything strconv.ParseBool does ("True", "1", ...). On a decode
// error the fields that did decode are still returned.
func (e Environment) Settings() (Settings, error) {
	var s Settings
	input := make(map[string]any, len(e))
	for k, v := range e {
		input[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return s, err
	}
	if err := decoder.Decode(input); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
