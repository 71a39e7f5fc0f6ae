/*
Package ports defines the driven ports (interfaces) for tableau.

These interfaces decouple the scene core from external implementations, allowing
projects to be persisted to various backends and actions to be built by any catalog.

# Key Interfaces

  - ActionFactory: Builds kind-specific action bodies from descriptions.
  - DocumentStore: Persists and loads project documents.
  - DistributedLocker: Provides distributed locking for concurrent document edits.
*/
package ports
