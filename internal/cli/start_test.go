package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/contable/internal/testutils"
	"github.com/aretw0/contable/pkg/bootstrap"
	"github.com/aretw0/contable/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineManifest skips the interpreter, installer and external server so
// tests only exercise the local steps.
const offlineManifest = `
interpreter: {command: ""}
install: {command: ""}
requires: []
host: 127.0.0.1
port: 0
`

func projectDir(t *testing.T, manifest string) string {
	t.Helper()
	return testutils.SetupProject(t, map[string]string{bootstrap.DefaultManifestFile: manifest})
}

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, name := range bootstrap.RequiredCredentials {
		t.Setenv(name, "")
	}
	// Unset rather than blank: a blank process value would shadow the .env file.
	for _, name := range []string{"LOG_LEVEL", "DEBUG"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func nonTerminal(t *testing.T) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r
}

func TestStart_DegradedStartDisallowed(t *testing.T) {
	clearCredentials(t)
	out := &testutils.SyncBuffer{}

	err := Start(context.Background(), StartOptions{
		Dir:                projectDir(t, offlineManifest),
		Minimal:            true,
		AllowDegradedStart: bootstrap.Set(false),
	}, IO{Out: out, Err: &bytes.Buffer{}})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "AZURE_OPENAI_ENDPOINT")
	assert.Contains(t, out.String(), "Configure Azure y ejecute nuevamente")
	assert.NotContains(t, out.String(), "Servidor minimal iniciando")
}

func TestStart_NonInteractiveAborts(t *testing.T) {
	clearCredentials(t)
	out := &testutils.SyncBuffer{}

	err := Start(context.Background(), StartOptions{
		Dir:     projectDir(t, offlineManifest),
		Minimal: true,
	}, IO{In: nonTerminal(t), Out: out, Err: &bytes.Buffer{}})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "--allow-degraded-start")
	assert.Contains(t, out.String(), "Configure Azure y ejecute nuevamente")
}

func TestStart_MinimalRunsUntilCancelled(t *testing.T) {
	clearCredentials(t)
	dir := projectDir(t, offlineManifest)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "env.example"), []byte("AZURE_OPENAI_ENDPOINT=\n"), 0o644))
	out := &testutils.SyncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, StartOptions{
			Dir:                dir,
			Minimal:            true,
			AllowDegradedStart: bootstrap.Set(true),
		}, IO{Out: out, Err: &testutils.SyncBuffer{}})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Servidor minimal iniciando")
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	assert.Contains(t, out.String(), "Archivo .env creado desde env.example")
	assert.Contains(t, out.String(), "Servidor detenido")
	assert.FileExists(t, filepath.Join(dir, ".env"))
}

func TestCheck_FatalInterpreter(t *testing.T) {
	clearCredentials(t)
	dir := projectDir(t, `
interpreter: {command: contable-no-such-interpreter, args: ["--version"], min_version: "3.8"}
install: {command: ""}
`)
	out := &bytes.Buffer{}

	err := Check(context.Background(), StartOptions{Dir: dir}, IO{Out: out, Err: &bytes.Buffer{}}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterpreterUnavailable)
	assert.True(t, domain.IsFatal(err))
}

func TestCheck_JSON(t *testing.T) {
	clearCredentials(t)
	dir := projectDir(t, offlineManifest)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "env.example"), []byte("AZURE_OPENAI_ENDPOINT=\n"), 0o644))
	out := &bytes.Buffer{}

	err := Check(context.Background(), StartOptions{Dir: dir}, IO{Out: out, Err: &bytes.Buffer{}}, true)
	require.NoError(t, err)

	var outcome domain.BootstrapOutcome
	require.NoError(t, json.Unmarshal(out.Bytes(), &outcome))
	assert.True(t, outcome.InterpreterOK)
	assert.True(t, outcome.EnvFileReady)
	assert.True(t, outcome.EnvFileCreated)
	assert.True(t, outcome.DependenciesOK)
	assert.False(t, outcome.CredentialsOK)
	assert.Equal(t, bootstrap.RequiredCredentials, outcome.MissingCredentials)
	assert.Equal(t, domain.DecisionPending, outcome.Decision)
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := projectDir(t, "host: 0.0.0.0\nport: 9000\n")

	cfg, err := loadConfig(StartOptions{Dir: dir, Port: 8123}, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindHost())
	assert.Equal(t, 8123, cfg.BindPort())
	assert.Equal(t, filepath.Join(dir, ".env"), cfg.EnvFilePath())
	_, set := cfg.AllowDegradedStart.Get()
	assert.False(t, set)
}

func TestLoadConfig_InvalidManifest(t *testing.T) {
	dir := projectDir(t, "port: 70000\n")

	_, err := loadConfig(StartOptions{Dir: dir}, nil)

	assert.Error(t, err)
}

func TestAzureConfigured(t *testing.T) {
	all := map[string]string{}
	for _, name := range bootstrap.RequiredCredentials {
		all[name] = "x"
	}
	assert.True(t, azureConfigured(all))

	all["AZURE_SEARCH_API_KEY"] = "  "
	assert.False(t, azureConfigured(all))
	assert.False(t, azureConfigured(nil))
}

func TestCheck_EnvFileLogLevel(t *testing.T) {
	clearCredentials(t)
	dir := testutils.SetupProject(t, map[string]string{
		bootstrap.DefaultManifestFile: offlineManifest,
		".env":                        "LOG_LEVEL=DEBUG\n",
	})
	logs := &bytes.Buffer{}

	err := Check(context.Background(), StartOptions{Dir: dir}, IO{Out: &bytes.Buffer{}, Err: logs}, true)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Environment loaded")
	assert.Contains(t, logs.String(), "level=DEBUG")
}

func TestCheck_DefaultLevelHidesDebug(t *testing.T) {
	clearCredentials(t)
	dir := testutils.SetupProject(t, map[string]string{
		bootstrap.DefaultManifestFile: offlineManifest,
		".env":                        "LOG_LEVEL=INFO\n",
	})
	logs := &bytes.Buffer{}

	err := Check(context.Background(), StartOptions{Dir: dir}, IO{Out: &bytes.Buffer{}, Err: logs}, true)

	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "Environment loaded")
}
