/*
Package ports defines the driven ports (interfaces) used by the bootstrap sequencer.

They decouple the sequencer from the processes, terminals and servers it talks to, so
every step can be exercised in tests with in-memory doubles.

# Key Interfaces

  - CommandRunner: runs a declared external command (interpreter version check, installers).
  - Prompter: asks the operator a yes/no question.
  - Launcher: the hosting facility that binds host/port, serves, and blocks until interrupted.
*/
package ports
