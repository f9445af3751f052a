/*
Package ports defines the driven ports (interfaces) of the chain generator.

These interfaces decouple generation from the coordination backend, so the same
generator runs as a one-shot CLI, behind the HTTP API, or across several hosts
sharing a source tree.

# Key Interfaces

  - PathLocker: grants exclusive ownership of a package path for the duration of a run.
*/
package ports
