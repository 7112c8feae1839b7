/*
Package bootstrap decides whether the accounting backend can start, and starts it.

A Sequencer runs a fixed, linear list of idempotent checks:

 1. CheckInterpreterVersion: the declared interpreter must meet the minimum version (fatal).
 2. EnsureConfigFile: synthesize .env from env.example plus development defaults, never overwriting.
 3. InstallDeclaredDependencies: run the declared installer (fatal on failure).
 4. LoadEnvironment: read .env into an explicit Environment, under the process environment.
 5. CheckRequiredCredentials: record missing credential variables (non-fatal).
 6. ConfirmOrAbort: with missing credentials, consult allow-degraded-start or ask the operator.
 7. StartServer: verify the hosting facility is installed, then hand off to a ports.Launcher.

The process environment and working directory are never mutated: everything a step learns
is threaded through Config and Environment and injected into the launch target.
*/
package bootstrap
