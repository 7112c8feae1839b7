/*
Package domain contains the value objects shared by the minimal-mode service and
the bootstrap sequencer.

Nothing here is persisted. Request payloads are built fresh for every request and
the bootstrap outcome exists only for one run. The package has no I/O.

# Key Entities

  - InvoiceExtractionResult: fields extracted from an uploaded invoice (canned in minimal mode).
  - ChatExchange: a question and its templated answer, with a trace of how it was produced.
  - BootstrapOutcome: pass/fail per pre-flight check plus the terminal decision.
  - LaunchTarget: what a hosting facility needs to start serving.
*/
package domain
