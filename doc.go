/*
Package contable hosts the backend of the accounting assistant ("Agente Contable") in
minimal mode and prepares the environment the full backend needs.

The module has two halves:

  - A minimal HTTP API (pkg/adapters/http) that answers the routes the frontend calls
    with a canned invoice extraction result and a templated chat answer, so the
    frontend stays usable while the AI backend is unavailable.
  - A bootstrap sequence (pkg/bootstrap) that checks the interpreter, synthesizes the
    local .env, installs declared dependencies, checks credentials, asks the operator
    whether to continue without them, and finally launches a server.

# Usage

The contable binary wires both together:

	contable start --dir ./python_backend              # full backend via the manifest
	contable start --minimal --allow-degraded-start    # built-in API, no prompt
	contable serve --port 8000                         # built-in API only
	contable check --json                              # pre-flight report

Library users can drive the sequence directly:

	cfg := bootstrap.NewConfig(dir, bootstrap.DefaultManifest(), env)
	seq := bootstrap.New(cfg,
		bootstrap.WithRunner(process.NewRunner()),
		bootstrap.WithLauncher(http.NewLauncher()),
	)
	outcome, err := seq.Run(ctx)
*/
package contable
