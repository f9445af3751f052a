/*
Package domain contains the core models of the chain generator.

It defines what a generation request is, how chain modules are named and linked,
and which validation policy applies to a request. This package is kept pure and
free of I/O so the same rules can be shared by the CLI, the HTTP API and tests.

# Key Entities

  - Request: the three numbers-and-a-name input that fully determines a package.
  - Module: one link of the import chain (position, name, successor).
  - Policy: whether out-of-range requests are accepted as-is or rejected.
  - LifecycleHooks: callbacks fired while a package is being written.
*/
package domain
