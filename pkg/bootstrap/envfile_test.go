package bootstrap

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureConfigFile(t *testing.T) {
	t.Run("Synthesizes From Template", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		tmplPath := filepath.Join(dir, "env.example")
		require.NoError(t, os.WriteFile(tmplPath, []byte("AZURE_OPENAI_ENDPOINT=\n"), 0o644))

		state, err := EnsureConfigFile(envPath, tmplPath)
		require.NoError(t, err)
		assert.Equal(t, EnvFileCreated, state)

		data, err := os.ReadFile(envPath)
		require.NoError(t, err)
		assert.Equal(t, "AZURE_OPENAI_ENDPOINT=\n"+DevDefaults, string(data))
		assert.Contains(t, string(data), "DEBUG=True\nLOG_LEVEL=INFO\n")
	})

	t.Run("Never Touches Existing File", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		tmplPath := filepath.Join(dir, "env.example")
		require.NoError(t, os.WriteFile(envPath, []byte("MINE=1\n"), 0o600))
		require.NoError(t, os.WriteFile(tmplPath, []byte("OTHER=2\n"), 0o644))
		before, err := os.Stat(envPath)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			state, err := EnsureConfigFile(envPath, tmplPath)
			require.NoError(t, err)
			assert.Equal(t, EnvFileExisted, state)
		}

		data, err := os.ReadFile(envPath)
		require.NoError(t, err)
		assert.Equal(t, "MINE=1\n", string(data))
		after, err := os.Stat(envPath)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("Second Run After Creation Is A No-op", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		tmplPath := filepath.Join(dir, "env.example")
		require.NoError(t, os.WriteFile(tmplPath, []byte("A=1\n"), 0o644))

		_, err := EnsureConfigFile(envPath, tmplPath)
		require.NoError(t, err)
		state, err := EnsureConfigFile(envPath, tmplPath)
		require.NoError(t, err)
		assert.Equal(t, EnvFileExisted, state)
	})

	t.Run("No Template", func(t *testing.T) {
		dir := t.TempDir()
		state, err := EnsureConfigFile(filepath.Join(dir, ".env"), filepath.Join(dir, "env.example"))
		require.NoError(t, err)
		assert.Equal(t, EnvFileMissing, state)
		assert.NoFileExists(t, filepath.Join(dir, ".env"))
	})
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(`
# comment
AZURE_OPENAI_ENDPOINT=https://from-file
AZURE_SEARCH_API_KEY="quoted key"
DEBUG=True
`), 0o600))

	base := map[string]string{"AZURE_OPENAI_ENDPOINT": "https://from-process", "PATH": "/bin"}

	env, err := LoadEnvironment(envPath, base)
	require.NoError(t, err)

	assert.Equal(t, "https://from-process", env["AZURE_OPENAI_ENDPOINT"], "process environment wins")
	assert.Equal(t, "quoted key", env["AZURE_SEARCH_API_KEY"])
	assert.Equal(t, "/bin", env["PATH"])
	assert.Equal(t, "https://from-process", base["AZURE_OPENAI_ENDPOINT"])
	_, leaked := base["DEBUG"]
	assert.False(t, leaked, "base must not be mutated")

	t.Run("Missing File", func(t *testing.T) {
		env, err := LoadEnvironment(filepath.Join(dir, "absent"), base)
		require.NoError(t, err)
		assert.Equal(t, Environment(base), env)
	})
}

func TestEnvironment_Missing(t *testing.T) {
	env := Environment{
		"AZURE_OPENAI_ENDPOINT": "https://x",
		"AZURE_OPENAI_API_KEY":  "   ",
	}
	assert.Equal(t, []string{"AZURE_OPENAI_API_KEY", "AZURE_SEARCH_ENDPOINT", "AZURE_SEARCH_API_KEY"}, env.Missing(RequiredCredentials))
	assert.Empty(t, Environment{}.Missing(nil))
	assert.Equal(t, []string{"AZURE_OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT"}, env.Keys())
}

func TestEnvironment_Settings(t *testing.T) {
	env := Environment{
		"DEBUG":                 "True",
		"LOG_LEVEL":             "INFO",
		"AZURE_OPENAI_ENDPOINT": "a",
		"AZURE_OPENAI_API_KEY":  "b",
		"AZURE_SEARCH_ENDPOINT": "c",
		"AZURE_SEARCH_API_KEY":  "d",
		"UNRELATED":             "ignored",
	}

	s, err := env.Settings()
	require.NoError(t, err)
	assert.True(t, s.Debug)
	assert.Equal(t, "INFO", s.LogLevel)
	assert.True(t, s.AzureConfigured())

	delete(env, "AZURE_SEARCH_API_KEY")
	s, err = env.Settings()
	require.NoError(t, err)
	assert.False(t, s.AzureConfigured())

	_, err = Environment{"DEBUG": "maybe"}.Settings()
	assert.Error(t, err)
}

func TestSettings_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Settings{}.Level(slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, Settings{Debug: true}.Level(slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, Settings{Debug: true, LogLevel: "WARNING"}.Level(slog.LevelInfo))
	assert.Equal(t, slog.LevelError, Settings{LogLevel: "error"}.Level(slog.LevelInfo))
	assert.False(t, Settings{AzureOpenAIEndpoint: "a", AzureOpenAIAPIKey: " ", AzureSearchEndpoint: "c", AzureSearchAPIKey: "d"}.AzureConfigured())
}
